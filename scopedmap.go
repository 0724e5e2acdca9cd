package graphql

import "sync"

// ScopedMap is a chained key/value map used as request-scoped state
// (spec.md §4.6): each node holds its own entries plus an optional parent.
// getGlobal walks parents; setScoped writes locally; setGlobal writes to the
// nearest ancestor that already holds the key, or locally if none does.
// Subscriptions create a child per event so request-local state (e.g.
// response headers written by a resolver) is isolated across events while
// request globals set before subscribe started remain readable.
//
// One ScopedMap instance is shared by every field task of a single request;
// its own mutex makes concurrent field resolvers (spec.md §5) safe to read
// and write it without the executor's help.
type ScopedMap struct {
	mu     sync.RWMutex
	parent *ScopedMap
	values map[string]interface{}
}

// NewScopedMap creates a root scope with no parent.
func NewScopedMap() *ScopedMap {
	return &ScopedMap{values: make(map[string]interface{})}
}

// Child creates a new scope chained to m, used once per subscription event
// and anywhere else a request wants isolated local state layered on shared
// globals (subscription.go).
func (m *ScopedMap) Child() *ScopedMap {
	return &ScopedMap{parent: m, values: make(map[string]interface{})}
}

// GetGlobal walks m and its ancestors, returning the first match.
func (m *ScopedMap) GetGlobal(key string) (interface{}, bool) {
	for s := m; s != nil; s = s.parent {
		s.mu.RLock()
		v, ok := s.values[key]
		s.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// GetScoped returns only an entry set locally on m, ignoring ancestors.
func (m *ScopedMap) GetScoped(key string) (interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// SetScoped writes key/value locally to m, shadowing any ancestor entry of
// the same name for lookups through m and its descendants.
func (m *ScopedMap) SetScoped(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// SetGlobal writes to the nearest ancestor (including m) that already
// contains key, or to m itself if no ancestor does.
func (m *ScopedMap) SetGlobal(key string, value interface{}) {
	for s := m; s != nil; s = s.parent {
		s.mu.Lock()
		_, ok := s.values[key]
		if ok {
			s.values[key] = value
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
	m.SetScoped(key, value)
}
