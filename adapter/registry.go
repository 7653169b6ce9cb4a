// This file adds the process-wide adapter profile registry (spec §4.8,
// §9 "Global registries mutated at import time ... use an explicit
// startup phase") alongside the connection-level Adapter/BaseAdapter/Tx
// types in adapter.go. Profile/Registry are the only part of this
// package the compiler core depends on.
package adapter

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Registry is a write-once-before-Freeze, lock-free-after-Freeze map from
// adapter key to Profile. The zero value is usable; NewRegistry exists
// for callers that want an isolated registry (tests) instead of the
// process-wide Default.
type Registry struct {
	mu       sync.Mutex
	pending  map[string]*Profile
	frozen   atomic.Pointer[map[string]*Profile]
}

// NewRegistry returns an unfrozen registry pre-loaded with the six
// built-in profiles (postgres, mysql, sqlite, oracle, duckdb, bigquery).
func NewRegistry() *Registry {
	r := &Registry{pending: map[string]*Profile{}}
	for _, p := range builtinProfiles() {
		r.pending[p.Key] = p
	}
	return r
}

// Register adds or overwrites a profile before Freeze. It panics if the
// registry is already frozen — registration is a startup-phase-only
// operation, never a runtime one (spec §4.8 "additional entries may be
// registered before the first compile").
func (r *Registry) Register(p *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() != nil {
		panic(fmt.Sprintf("adapter: cannot register profile %q after Freeze", p.Key))
	}
	if r.pending == nil {
		r.pending = map[string]*Profile{}
	}
	r.pending[p.Key] = p
}

// Freeze publishes the current set of registered profiles as a single
// atomically-readable snapshot. Subsequent Lookup calls are lock-free
// reads; subsequent Register calls panic. Freeze is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() != nil {
		return
	}
	snapshot := make(map[string]*Profile, len(r.pending))
	for k, v := range r.pending {
		snapshot[k] = v
	}
	r.frozen.Store(&snapshot)
}

// Lookup returns the profile for key and whether it was found. Safe to
// call from any number of goroutines, before or after Freeze (before
// Freeze it takes the registration lock; after, it is a single atomic
// load with no lock).
func (r *Registry) Lookup(key string) (*Profile, bool) {
	if snap := r.frozen.Load(); snap != nil {
		p, ok := (*snap)[key]
		return p, ok
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pending[key]
	return p, ok
}

// Default is the process-wide registry consumers use unless they build
// their own. It starts pre-loaded with the built-in profiles and
// unfrozen; call Freeze() once at program startup.
var Default = NewRegistry()

// Freeze freezes the Default registry. Call this once, before the first
// compile, typically from a program's main or init.
func Freeze() { Default.Freeze() }

// Lookup looks up key in the Default registry.
func Lookup(key string) (*Profile, bool) { return Default.Lookup(key) }

// Register adds or overwrites a profile in the Default registry.
func Register(p *Profile) { Default.Register(p) }
