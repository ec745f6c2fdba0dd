// Package registry tracks every live runtime-issued handle together
// with its object type, parent/child topology, and per-type custom
// validation state.
//
// # Keys
//
// Handles are only unique per object type, so the registry indexes by
// Key, the (integer value, object type) pair:
//
//	key := registry.Key{Handle: uint64(session), Type: xr.ObjectTypeSession}
//	st, err := reg.Lookup(key)
//
// # Topology
//
// Every non-root state records its parent key and every state records
// its child keys; the two edges are maintained together. Destroying a
// handle detaches it from its parent and destroys its descendants,
// children first, because their API lifetime is bound to the parent.
//
// # Custom state
//
// Validators attach per-type payloads (swapchain image states, session
// graphics binding) after insertion:
//
//	st, _ := reg.Insert(key, parentKey)
//	reg.AttachCustom(st, newSwapchainState(createInfo))
//
// The registry owns the payload; on destruction a payload implementing
// Dropper gets its Drop method called.
//
// # Locking
//
// One reader-writer lock covers the index: lookups take the read side,
// insert and destroy the write side. Each State additionally carries a
// mutex guarding its custom state; callers lock it around multi-step
// reads and writes. Lock order is registry, then state, then reporter;
// never two states at once.
package registry
