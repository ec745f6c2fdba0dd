package registry

import (
	"sync"

	"github.com/rpavlik/OpenXR-CTS/xr"
)

// Key identifies a live handle. Two handles of different object types
// may share the same integer value.
type Key struct {
	Handle uint64
	Type   xr.ObjectType
}

// NoParent is the parent key of root handles.
var NoParent = Key{}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool { return k == Key{} }

// State is the registry entry for one live handle.
type State struct {
	key       Key
	parent    Key
	children  map[Key]struct{}
	custom    any
	createdAt uint64

	// mu guards custom state across multi-step validator reads and
	// writes. Taken after the registry lock, before the reporter.
	mu sync.Mutex
}

// Key returns the handle's identity.
func (s *State) Key() Key { return s.key }

// Parent returns the owning handle's key, or NoParent for roots.
func (s *State) Parent() Key { return s.parent }

// CreatedAt returns the insertion sequence number.
func (s *State) CreatedAt() uint64 { return s.createdAt }

// Custom returns the attached per-type payload, or nil.
func (s *State) Custom() any { return s.custom }

// Lock acquires the per-state mutex.
func (s *State) Lock() { s.mu.Lock() }

// Unlock releases the per-state mutex.
func (s *State) Unlock() { s.mu.Unlock() }

// Custom retrieves a state's payload as a concrete type. Returns the
// zero value and false if no payload is attached or the type differs.
func Custom[T any](s *State) (T, bool) {
	v, ok := s.custom.(T)
	return v, ok
}

// Dropper is optionally implemented by custom payloads that need
// cleanup when their handle is destroyed.
type Dropper interface {
	Drop()
}
