// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about composition building, plugin discovery, and store
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuilderHooks(&myBuilderHooks{})
//	    observability.SetDiscoveryHooks(&myDiscoveryHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Builder().OnBuildStart()
//	// ... assemble the spec ...
//	observability.Builder().OnBuildComplete(clipCount, total, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Builder Hooks
// =============================================================================

// BuilderHooks receives events from the composition builder.
type BuilderHooks interface {
	// OnClipPlaced records a clip landing on a track.
	OnClipPlaced(medium, track string, start, duration float64, unbounded bool)

	// OnTransitionAdded records a transition entering the global list.
	OnTransitionAdded(typ string, start, duration float64)

	// Build events
	OnBuildStart()
	OnBuildComplete(clipCount int, totalDuration float64, elapsed time.Duration, err error)
}

// =============================================================================
// Discovery Hooks
// =============================================================================

// DiscoveryHooks receives events from plugin discovery scans.
type DiscoveryHooks interface {
	// OnScanStart records the beginning of a directory scan.
	OnScanStart(dir string)

	// OnDescriptorLoaded records a successfully registered plugin.
	OnDescriptorLoaded(category, name string)

	// OnDescriptorFailed records a descriptor that could not be loaded.
	// Failures are isolated per candidate; the scan continues.
	OnDescriptorFailed(path string, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from composition store operations.
type StoreHooks interface {
	// OnStoreGet records a lookup and whether it hit.
	OnStoreGet(backend, id string, found bool)

	// OnStorePut records a write.
	OnStorePut(backend, id string, size int)

	// OnStoreDelete records a removal.
	OnStoreDelete(backend, id string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuilderHooks is a no-op implementation of BuilderHooks.
type NoopBuilderHooks struct{}

func (NoopBuilderHooks) OnClipPlaced(string, string, float64, float64, bool) {}
func (NoopBuilderHooks) OnTransitionAdded(string, float64, float64)          {}
func (NoopBuilderHooks) OnBuildStart()                                       {}
func (NoopBuilderHooks) OnBuildComplete(int, float64, time.Duration, error)  {}

// NoopDiscoveryHooks is a no-op implementation of DiscoveryHooks.
type NoopDiscoveryHooks struct{}

func (NoopDiscoveryHooks) OnScanStart(string)                {}
func (NoopDiscoveryHooks) OnDescriptorLoaded(string, string) {}
func (NoopDiscoveryHooks) OnDescriptorFailed(string, error)  {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreGet(string, string, bool) {}
func (NoopStoreHooks) OnStorePut(string, string, int)  {}
func (NoopStoreHooks) OnStoreDelete(string, string)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	builderHooks   BuilderHooks   = NoopBuilderHooks{}
	discoveryHooks DiscoveryHooks = NoopDiscoveryHooks{}
	storeHooks     StoreHooks     = NoopStoreHooks{}
	hooksMu        sync.RWMutex
)

// SetBuilderHooks registers custom builder hooks.
// This should be called once at application startup before building.
func SetBuilderHooks(h BuilderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		builderHooks = h
	}
}

// SetDiscoveryHooks registers custom discovery hooks.
// This should be called once at application startup before any scans.
func SetDiscoveryHooks(h DiscoveryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		discoveryHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before store use.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Builder returns the registered builder hooks.
func Builder() BuilderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return builderHooks
}

// Discovery returns the registered discovery hooks.
func Discovery() DiscoveryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return discoveryHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	builderHooks = NoopBuilderHooks{}
	discoveryHooks = NoopDiscoveryHooks{}
	storeHooks = NoopStoreHooks{}
}
