// Package observability defines hook interfaces for registry builds,
// component resolution and artifact storage.
//
// Libraries call the hooks; the binary installs implementations at startup.
// Until then every hook is a no-op.
//
//	m := metrics.New()
//	m.Install() // SetBuildHooks, SetResolveHooks, SetStoreHooks
//
// Emitting events:
//
//	observability.Build().OnBuildStart(ctx, dir)
//	observability.Build().OnBuildComplete(ctx, n, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Build Hooks
// =============================================================================

// BuildHooks receives events from the registry builder.
type BuildHooks interface {
	OnBuildStart(ctx context.Context, sourceDir string)
	OnComponent(ctx context.Context, id string, dependencies int)
	OnBuildComplete(ctx context.Context, components int, duration time.Duration, err error)
}

// =============================================================================
// Resolve Hooks
// =============================================================================

// ResolveHooks receives events from the registry service.
type ResolveHooks interface {
	// OnResolve records one resolution and the terminal state it reached
	// ("registry", "fallback" or "not_found").
	OnResolve(ctx context.Context, id, state string, duration time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from artifact stores.
type StoreHooks interface {
	OnLoad(ctx context.Context, backend string, size int, err error)
	OnSave(ctx context.Context, backend string, size int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuildHooks is a no-op implementation of BuildHooks.
type NoopBuildHooks struct{}

func (NoopBuildHooks) OnBuildStart(context.Context, string)                       {}
func (NoopBuildHooks) OnComponent(context.Context, string, int)                   {}
func (NoopBuildHooks) OnBuildComplete(context.Context, int, time.Duration, error) {}

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolve(context.Context, string, string, time.Duration) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, int, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, int, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	buildHooks   BuildHooks   = NoopBuildHooks{}
	resolveHooks ResolveHooks = NoopResolveHooks{}
	storeHooks   StoreHooks   = NoopStoreHooks{}
	hooksMu      sync.RWMutex
)

// SetBuildHooks registers custom build hooks.
// This should be called once at application startup before any build runs.
func SetBuildHooks(h BuildHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		buildHooks = h
	}
}

// SetResolveHooks registers custom resolve hooks.
// This should be called once at application startup before serving requests.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Build returns the registered build hooks.
func Build() BuildHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return buildHooks
}

// Resolve returns the registered resolve hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
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
	buildHooks = NoopBuildHooks{}
	resolveHooks = NoopResolveHooks{}
	storeHooks = NoopStoreHooks{}
}
