package registry

import "sync"

// Registry is a thread-safe key-value store with per-key locking. Extension
// registries (cmd, cron, api) collect entries during init and are locked once
// applied, so late registration fails loudly instead of being silently lost.
type Registry struct {
	values sync.Map
	locked sync.Map
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// SetGlobal stores a value for a key. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	if r.IsLocked(key) {
		panic("registry: set on locked key " + key)
	}
	r.values.Store(key, value)
}

// GetGlobal returns the value for a key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.values.Load(key)
}

// Lock makes a key immutable.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, true)
}

// IsLocked reports whether a key has been locked.
func (r *Registry) IsLocked(key string) bool {
	v, ok := r.locked.Load(key)
	return ok && v.(bool)
}

// UnlockForTesting clears the lock on a key. Test helper only.
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
