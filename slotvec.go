// Package slotvec provides a generational slot map: a growable container that
// hands out stable Handle keys instead of pointers. Slots freed by Remove are
// recycled by later Inserts, and each reuse bumps the slot's version so that
// handles to the removed value stop matching instead of silently aliasing the
// new one.
//
// The container is not safe for concurrent use; callers sharing a Vec across
// goroutines must synchronize externally.
package slotvec

import (
	"iter"
	"weak"

	"github.com/kamstrup/intmap"
)

// entry is one storage slot. Go has no tagged unions, so occupancy is a flag
// alongside the free-list link rather than a variant: when occupied is false,
// next holds the index of the next free slot (or len(entries) to terminate
// the chain) and value is the zero value.
type entry[T any] struct {
	version  uint32
	occupied bool
	next     int
	value    T
}

// Vec is a generational slot map storing values of type T.
// The zero value is an empty Vec ready for use.
type Vec[T any] struct {
	entries  []entry[T]
	nextFree int
	length   int

	// Live Ref identities keyed by handle, tracked weakly so dropped refs
	// can be collected. Allocated on first CreateRef.
	refs *intmap.Map[Handle, weak.Pointer[Ref[T]]]
}

// New creates an empty Vec. It does not allocate.
func New[T any]() *Vec[T] {
	return NewWithCapacity[T](0)
}

// NewWithCapacity creates an empty Vec with storage pre-allocated for
// capacity values. Capacity affects only allocation, never behavior.
func NewWithCapacity[T any](capacity int) *Vec[T] {
	return &Vec[T]{
		entries: make([]entry[T], 0, capacity),
	}
}

// Len returns the number of values currently stored.
func (v *Vec[T]) Len() int {
	return v.length
}

// IsEmpty reports whether the Vec holds no values.
func (v *Vec[T]) IsEmpty() bool {
	return v.length == 0
}

// Cap returns the current storage capacity. Growth past it follows the usual
// amortized reallocation of a slice and never invalidates handles.
func (v *Vec[T]) Cap() int {
	return cap(v.entries)
}

// Insert stores value and returns a handle to it. A freed slot is reused if
// one is available; otherwise storage grows by one slot. O(1) amortized.
func (v *Vec[T]) Insert(value T) Handle {
	if v.nextFree == len(v.entries) {
		slot := v.nextFree
		v.entries = append(v.entries, entry[T]{
			version:  0,
			occupied: true,
			value:    value,
		})
		v.nextFree++
		v.length++
		return NewHandle(uint32(slot), 0)
	}

	slot := v.nextFree
	e := &v.entries[slot]
	if e.occupied {
		// Can only happen through a bug in Vec itself, never through any
		// sequence of valid calls.
		panic("slotvec: free list points at an occupied slot")
	}
	e.version++
	e.occupied = true
	v.nextFree = e.next
	e.next = 0
	e.value = value
	v.length++
	return NewHandle(uint32(slot), e.version)
}

// Remove deletes the value h refers to and returns it. If h is stale, out of
// range, or already removed, it returns the zero value and false and the Vec
// is unchanged. The freed slot becomes the head of the free list; its version
// is bumped when the slot is next reused, not here.
func (v *Vec[T]) Remove(h Handle) (T, bool) {
	var zero T
	// Compare in uint64 space: on 32-bit platforms a slot with the top bit
	// set would convert to a negative int and slip past a signed check.
	if uint64(h.Slot()) >= uint64(len(v.entries)) {
		return zero, false
	}
	slot := int(h.Slot())
	e := &v.entries[slot]
	if !e.occupied || e.version != h.Version() {
		return zero, false
	}

	v.severRef(h)

	value := e.value
	e.value = zero
	e.occupied = false
	e.next = v.nextFree
	v.nextFree = slot
	v.length--
	return value, true
}

// Get returns a pointer to the value h refers to, or nil if h is stale, out
// of range, or removed. The pointer may be used to mutate the value in place;
// it is only guaranteed to point into the Vec until the next Insert, since
// growth can move the backing storage. Handles are unaffected by growth.
func (v *Vec[T]) Get(h Handle) *T {
	if uint64(h.Slot()) >= uint64(len(v.entries)) {
		return nil
	}
	e := &v.entries[h.Slot()]
	if !e.occupied || e.version != h.Version() {
		return nil
	}
	return &e.value
}

// Value returns a copy of the value h refers to.
func (v *Vec[T]) Value(h Handle) (T, bool) {
	if p := v.Get(h); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Contains reports whether h currently refers to a stored value.
func (v *Vec[T]) Contains(h Handle) bool {
	return v.Get(h) != nil
}

// MustGet is Get for call sites that have already established the handle is
// valid. It panics instead of returning nil: an invalid handle here is a
// caller bug, and returning a sentinel would let it read wrong data.
func (v *Vec[T]) MustGet(h Handle) *T {
	p := v.Get(h)
	if p == nil {
		panic("slotvec: invalid handle")
	}
	return p
}

// Iter returns an iterator over (handle, value) pairs in ascending slot
// order, skipping free slots. Values are copies; use IterMut to mutate.
// Each call starts a fresh traversal of the Vec's state at call time.
func (v *Vec[T]) Iter() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := range v.entries {
			e := &v.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(NewHandle(uint32(i), e.version), e.value) {
				return
			}
		}
	}
}

// IterMut returns an iterator over (handle, pointer) pairs in ascending slot
// order, skipping free slots. Mutating through the pointers changes stored
// values but never handle identities or slot positions.
func (v *Vec[T]) IterMut() iter.Seq2[Handle, *T] {
	return func(yield func(Handle, *T) bool) {
		for i := range v.entries {
			e := &v.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(NewHandle(uint32(i), e.version), &e.value) {
				return
			}
		}
	}
}

// Values returns an iterator over stored values only, in ascending slot order.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range v.entries {
			e := &v.entries[i]
			if !e.occupied {
				continue
			}
			if !yield(e.value) {
				return
			}
		}
	}
}
