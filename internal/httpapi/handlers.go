package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/reelkit/reelkit/pkg/cache"
	"github.com/reelkit/reelkit/pkg/diagram"
	"github.com/reelkit/reelkit/pkg/errors"
	"github.com/reelkit/reelkit/pkg/spec"
	"github.com/reelkit/reelkit/pkg/store"
	"github.com/reelkit/reelkit/pkg/timeline"
)

// maxBodySize bounds request bodies; specs are small documents.
const maxBodySize = 4 << 20

// verdict is the validation result shape, also the cached value.
type verdict struct {
	Valid    bool       `json:"valid"`
	Error    *errorBody `json:"error,omitempty"`
	Duration float64    `json:"duration"`
	Tracks   int        `json:"tracks"`
	Clips    int        `json:"clips"`
}

// handleValidate checks a spec document (JSON or YAML body) and returns
// a verdict. Verdicts are cached by spec content hash.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeBadRequest(w, errors.ErrCodeInvalidInput, "reading request body")
		return
	}

	doc, err := spec.Unmarshal(body)
	if err != nil {
		writeError(w, err)
		return
	}

	canonical, err := spec.Marshal(doc)
	if err != nil {
		writeError(w, err)
		return
	}
	key := s.keyer.ValidationKey(cache.Hash(canonical))

	if data, ok, cerr := s.cache.Get(r.Context(), key); cerr == nil && ok {
		var v verdict
		if json.Unmarshal(data, &v) == nil {
			writeJSON(w, http.StatusOK, v)
			return
		}
	}

	v := s.validateSpec(doc)
	if data, merr := json.Marshal(v); merr == nil {
		if cerr := s.cache.Set(r.Context(), key, data, verdictTTL); cerr != nil {
			s.logger.Warn("caching verdict failed", "error", cerr)
		}
	}
	writeJSON(w, http.StatusOK, v)
}

// validateSpec rebuilds the document through the timeline package so the
// verdict covers overlap conflicts and registry references, not just the
// document structure.
func (s *Server) validateSpec(doc *spec.Spec) verdict {
	v := verdict{
		Duration: doc.Duration,
		Tracks:   len(doc.Tracks),
		Clips:    doc.ClipCount(),
	}

	b, err := timeline.FromSpec(doc, timeline.WithResolver(s.registries))
	if err == nil {
		_, err = b.Build()
	}
	if err != nil {
		v.Error = &errorBody{
			Code:    string(errors.GetCode(err)),
			Message: errors.UserMessage(err),
		}
		return v
	}
	v.Valid = true
	return v
}

// compositionRequest is the write shape for create and update.
type compositionRequest struct {
	Name string     `json:"name"`
	Spec *spec.Spec `json:"spec"`
}

// decodeComposition parses and fully validates a composition write body.
// Stored compositions must be buildable, not just well-formed, so the
// spec is rebuilt through the timeline package before acceptance.
func (s *Server) decodeComposition(w http.ResponseWriter, r *http.Request) (*compositionRequest, bool) {
	var req compositionRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeBadRequest(w, errors.ErrCodeInvalidInput, "decoding request body: "+err.Error())
		return nil, false
	}
	if req.Name == "" {
		writeBadRequest(w, errors.ErrCodeInvalidInput, "composition name must not be empty")
		return nil, false
	}
	if req.Spec == nil {
		writeBadRequest(w, errors.ErrCodeInvalidInput, "composition spec must not be empty")
		return nil, false
	}
	if err := req.Spec.CheckStructure(); err != nil {
		writeBadRequest(w, errors.GetCode(err), errors.UserMessage(err))
		return nil, false
	}
	if v := s.validateSpec(req.Spec); !v.Valid {
		writeBadRequest(w, errors.Code(v.Error.Code), v.Error.Message)
		return nil, false
	}
	return &req, true
}

// compositionSummary is the list item shape.
type compositionSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Duration  float64   `json:"duration"`
	Clips     int       `json:"clips"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]compositionSummary, 0, len(all))
	for _, c := range all {
		sum := compositionSummary{ID: c.ID, Name: c.Name, UpdatedAt: c.UpdatedAt}
		if c.Spec != nil {
			sum.Duration = c.Spec.Duration
			sum.Clips = c.Spec.ClipCount()
		}
		out = append(out, sum)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeComposition(w, r)
	if !ok {
		return
	}

	c := store.New(req.Name, req.Spec)
	if err := s.store.Put(r.Context(), c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, errors.ErrCodeInvalidInput, "malformed composition id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	c, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	existing, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	req, ok := s.decodeComposition(w, r)
	if !ok {
		return
	}

	existing.Name = req.Name
	existing.Spec = req.Spec
	if err := s.store.Put(r.Context(), existing); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDiagram renders the structure diagram for a stored composition.
// Formats: svg (default), png, dot. Rendered bytes are cached by spec
// content hash.
func (s *Server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}

	c, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	canonical, err := spec.Marshal(c.Spec)
	if err != nil {
		writeError(w, err)
		return
	}
	key := s.keyer.DiagramKey(cache.Hash(canonical), format)
	if data, ok, cerr := s.cache.Get(r.Context(), key); cerr == nil && ok {
		w.Header().Set("Content-Type", diagramContentType(format))
		_, _ = w.Write(data)
		return
	}

	dot := diagram.ToDOT(c.Spec, diagram.Options{Detailed: true})
	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = diagram.RenderSVG(r.Context(), dot)
	case "png":
		data, err = diagram.RenderPNG(r.Context(), dot)
	default:
		writeBadRequest(w, errors.ErrCodeUnsupported, "unsupported diagram format "+format)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	if cerr := s.cache.Set(r.Context(), key, data, 0); cerr != nil {
		s.logger.Warn("caching diagram failed", "error", cerr)
	}
	w.Header().Set("Content-Type", diagramContentType(format))
	_, _ = w.Write(data)
}

func diagramContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "dot":
		return "text/vnd.graphviz"
	default:
		return "image/svg+xml"
	}
}
