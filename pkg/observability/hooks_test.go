package observability

import (
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	// Builder hooks
	b := NoopBuilderHooks{}
	b.OnClipPlaced("image", "video_0", 0, 10, false)
	b.OnTransitionAdded("fade", 9, 1)
	b.OnBuildStart()
	b.OnBuildComplete(3, 16, time.Millisecond, nil)

	// Discovery hooks
	d := NoopDiscoveryHooks{}
	d.OnScanStart("plugins")
	d.OnDescriptorLoaded("effects", "glitch")
	d.OnDescriptorFailed("plugins/effects/bad.toml", nil)

	// Store hooks
	s := NoopStoreHooks{}
	s.OnStoreGet("file", "abc", true)
	s.OnStorePut("mongo", "abc", 1024)
	s.OnStoreDelete("file", "abc")
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Builder().(NoopBuilderHooks); !ok {
		t.Error("Builder() should return NoopBuilderHooks by default")
	}
	if _, ok := Discovery().(NoopDiscoveryHooks); !ok {
		t.Error("Discovery() should return NoopDiscoveryHooks by default")
	}
	if _, ok := Store().(NoopStoreHooks); !ok {
		t.Error("Store() should return NoopStoreHooks by default")
	}

	customBuilder := &testBuilderHooks{}
	SetBuilderHooks(customBuilder)
	if Builder() != customBuilder {
		t.Error("SetBuilderHooks should set custom hooks")
	}

	customDiscovery := &testDiscoveryHooks{}
	SetDiscoveryHooks(customDiscovery)
	if Discovery() != customDiscovery {
		t.Error("SetDiscoveryHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if Store() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	Reset()
	if _, ok := Builder().(NoopBuilderHooks); !ok {
		t.Error("Reset() should restore NoopBuilderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBuilderHooks{}
	SetBuilderHooks(custom)

	SetBuilderHooks(nil)

	if Builder() != custom {
		t.Error("SetBuilderHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testBuilderHooks struct{ NoopBuilderHooks }
type testDiscoveryHooks struct{ NoopDiscoveryHooks }
type testStoreHooks struct{ NoopStoreHooks }
