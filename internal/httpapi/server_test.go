package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit/pkg/spec"
	"github.com/reelkit/reelkit/pkg/store"
	"github.com/reelkit/reelkit/pkg/timeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Options{})
}

func sampleSpec(t *testing.T) *spec.Spec {
	t.Helper()
	s, err := timeline.NewBuilder().
		AddVideo("intro.mp4", timeline.WithDuration(5)).
		AddVideo("main.mp4", timeline.WithDuration(10)).
		AddText("Welcome", timeline.WithDuration(3)).
		AddMusic("bed.mp3").
		AddTransition("fade", 0.5).
		Build()
	if err != nil {
		t.Fatalf("building sample spec: %v", err)
	}
	return s
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestValidateAcceptsGoodSpec(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/validate", sampleSpec(t))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var v verdict
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding verdict: %v", err)
	}
	if !v.Valid {
		t.Errorf("verdict not valid: %+v", v.Error)
	}
	if v.Duration != 18 {
		t.Errorf("Duration = %g, want 18", v.Duration)
	}
	if v.Clips != 4 {
		t.Errorf("Clips = %d, want 4", v.Clips)
	}
}

func TestValidateFlagsUnknownEffect(t *testing.T) {
	s := sampleSpec(t)
	s.Tracks[0].Clips[0].Effect = "does-not-exist"

	rec := doJSON(t, testServer(t), http.MethodPost, "/v1/validate", s)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var v verdict
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding verdict: %v", err)
	}
	if v.Valid {
		t.Fatal("verdict valid, want invalid")
	}
	if v.Error == nil || v.Error.Code != "EFFECT_NOT_FOUND" {
		t.Errorf("error = %+v, want EFFECT_NOT_FOUND", v.Error)
	}
}

func TestValidateRejectsGarbageBody(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestValidateAcceptsYAMLBody(t *testing.T) {
	data, err := spec.MarshalYAML(sampleSpec(t))
	if err != nil {
		t.Fatalf("marshaling yaml: %v", err)
	}
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestCompositionLifecycle(t *testing.T) {
	srv := testServer(t)
	body := compositionRequest{Name: "launch teaser", Spec: sampleSpec(t)}

	rec := doJSON(t, srv, http.MethodPost, "/v1/compositions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created store.Composition
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created composition: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("created composition has no id")
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/compositions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []compositionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "launch teaser" {
		t.Fatalf("list = %+v, want one entry named launch teaser", list)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/compositions/"+created.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	body.Name = "launch teaser v2"
	rec = doJSON(t, srv, http.MethodPut, "/v1/compositions/"+created.ID.String(), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body)
	}
	var updated store.Composition
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decoding updated composition: %v", err)
	}
	if updated.Name != "launch teaser v2" {
		t.Errorf("updated name = %q", updated.Name)
	}
	if updated.ID != created.ID {
		t.Errorf("update changed id: %s != %s", updated.ID, created.ID)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/v1/compositions/"+created.ID.String(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/compositions/"+created.ID.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCompositionCreateRejectsBadInput(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		name string
		body compositionRequest
	}{
		{"missing name", compositionRequest{Spec: sampleSpec(t)}},
		{"missing spec", compositionRequest{Name: "no spec"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/v1/compositions", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestCompositionCreateRejectsUnbuildableSpec(t *testing.T) {
	doc := sampleSpec(t)
	doc.Tracks[0].Clips[0].Effect = "does-not-exist"

	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/v1/compositions", compositionRequest{Name: "broken", Spec: doc})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "EFFECT_NOT_FOUND") {
		t.Errorf("body missing error code: %s", rec.Body)
	}
}

func TestCompositionBadID(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/compositions/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCompositionUnknownID(t *testing.T) {
	srv := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/v1/compositions/"+uuid.NewString(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDiagramDOT(t *testing.T) {
	srv := testServer(t)
	body := compositionRequest{Name: "diagram target", Spec: sampleSpec(t)}
	rec := doJSON(t, srv, http.MethodPost, "/v1/compositions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	var created store.Composition
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created composition: %v", err)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/compositions/"+created.ID.String()+"/diagram?format=dot", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("diagram status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "digraph composition") {
		t.Errorf("diagram body missing digraph header: %s", rec.Body)
	}
}

func TestDiagramUnknownFormat(t *testing.T) {
	srv := testServer(t)
	body := compositionRequest{Name: "diagram target", Spec: sampleSpec(t)}
	rec := doJSON(t, srv, http.MethodPost, "/v1/compositions", body)
	var created store.Composition
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding created composition: %v", err)
	}

	rec = doJSON(t, srv, http.MethodGet, "/v1/compositions/"+created.ID.String()+"/diagram?format=bmp", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
