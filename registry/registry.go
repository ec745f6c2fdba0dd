package registry

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/rpavlik/OpenXR-CTS/xr"
)

var (
	ErrUnknownHandle   = errors.New("registry: unknown handle")
	ErrDuplicateHandle = errors.New("registry: handle already live")
	ErrClosed          = errors.New("registry: closed")
)

// EventType classifies a lifecycle notification.
type EventType uint8

const (
	EventInserted EventType = iota
	EventDestroyed
)

// Event describes one handle lifecycle change.
type Event struct {
	Type   EventType
	Key    Key
	Parent Key
}

// Observer receives handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Registry is the canonical index of live handle state. It is the sole
// source of truth for handle validity on the validation side; it
// assumes the runtime does not recycle an integer for the same object
// type before the prior destroy returns.
type Registry struct {
	mu        sync.RWMutex
	entries   map[Key]*State
	seq       uint64
	closed    bool
	observers []Observer
	obsMu     sync.RWMutex
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[Key]*State, 64),
	}
}

// Lookup returns the state for key.
func (r *Registry) Lookup(key Key) (*State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.entries[key]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return st, nil
}

// Insert registers a new handle under parent and returns its state.
// Parent must be live unless it is NoParent.
//
// If key is already live the runtime is nonconforming: the prior state
// and its descendants are replaced and Insert returns the fresh state
// together with ErrDuplicateHandle so the caller can report the reuse
// and continue.
func (r *Registry) Insert(key, parent Key) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if !parent.IsZero() {
		if _, ok := r.entries[parent]; !ok {
			return nil, ErrUnknownHandle
		}
	}

	reused := false
	if prior, ok := r.entries[key]; ok {
		reused = true
		r.destroyLocked(prior)
		// destroyLocked may have removed the parent too; re-check.
		if !parent.IsZero() {
			if _, ok := r.entries[parent]; !ok {
				return nil, ErrUnknownHandle
			}
		}
	}

	r.seq++
	st := &State{
		key:       key,
		parent:    parent,
		children:  make(map[Key]struct{}),
		createdAt: r.seq,
	}
	r.entries[key] = st
	if !parent.IsZero() {
		r.entries[parent].children[key] = struct{}{}
	}

	Logger().Debug("handle inserted",
		zap.Uint64("handle", key.Handle),
		zap.Stringer("type", key.Type))
	r.notify(Event{Type: EventInserted, Key: key, Parent: parent})

	if reused {
		return st, ErrDuplicateHandle
	}
	return st, nil
}

// AttachCustom moves ownership of a per-type payload into the state.
func (r *Registry) AttachCustom(st *State, custom any) {
	st.Lock()
	st.custom = custom
	st.Unlock()
}

// Destroy removes key and its descendants, children first.
func (r *Registry) Destroy(key Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.entries[key]
	if !ok {
		return ErrUnknownHandle
	}
	r.destroyLocked(st)
	return nil
}

func (r *Registry) destroyLocked(st *State) {
	for child := range st.children {
		if cs, ok := r.entries[child]; ok {
			r.destroyLocked(cs)
		}
	}
	if !st.parent.IsZero() {
		if ps, ok := r.entries[st.parent]; ok {
			delete(ps.children, st.key)
		}
	}
	delete(r.entries, st.key)

	if d, ok := st.custom.(Dropper); ok {
		d.Drop()
	}
	st.custom = nil

	Logger().Debug("handle destroyed",
		zap.Uint64("handle", st.key.Handle),
		zap.Stringer("type", st.key.Type))
	r.notify(Event{Type: EventDestroyed, Key: st.key, Parent: st.parent})
}

// ForEachChildOfType calls fn for each live child of key with the
// given object type, stopping early if fn returns false.
func (r *Registry) ForEachChildOfType(key Key, t xr.ObjectType, fn func(*State) bool) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.entries[key]
	if !ok {
		return ErrUnknownHandle
	}
	for child := range st.children {
		if child.Type != t {
			continue
		}
		if cs, ok := r.entries[child]; ok {
			if !fn(cs) {
				break
			}
		}
	}
	return nil
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Close destroys all remaining handles and rejects further inserts.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	for len(r.entries) > 0 {
		for _, st := range r.entries {
			// destroyLocked removes descendants too; restart the walk.
			r.destroyLocked(st)
			break
		}
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnHandleEvent(e)
	}
}
