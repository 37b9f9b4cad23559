package slotvec

import (
	"weak"

	"github.com/kamstrup/intmap"
)

// Ref is a stable, shareable reference to a stored value. Unlike a Handle,
// which is a plain value copied freely, all holders of a Ref observe its
// invalidation: once the value is removed (or the ref invalidated manually),
// Resolve fails for everyone holding the same *Ref.
type Ref[T any] struct {
	vec    *Vec[T]
	handle Handle
}

// Resolve returns the handle this ref tracks. It returns false once the
// referenced value has been removed or the ref invalidated.
func (r *Ref[T]) Resolve() (Handle, bool) {
	if r == nil || r.vec == nil {
		return 0, false
	}
	return r.handle, true
}

// Get returns a pointer to the referenced value, or nil if the ref is no
// longer live.
func (r *Ref[T]) Get() *T {
	if r == nil || r.vec == nil {
		return nil
	}
	return r.vec.Get(r.handle)
}

// CreateRef returns the stable Ref for h, creating one on first request.
// Repeated calls with the same live handle return the same *Ref. Returns nil
// if h is not currently valid.
func (v *Vec[T]) CreateRef(h Handle) *Ref[T] {
	if !v.Contains(h) {
		return nil
	}

	if v.refs == nil {
		v.refs = intmap.New[Handle, weak.Pointer[Ref[T]]](16)
	}

	// Check if we already have a ref for this handle
	if weakPtr, ok := v.refs.Get(h); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		v.refs.Del(h)
	}

	ref := &Ref[T]{
		vec:    v,
		handle: h,
	}
	v.refs.Put(h, weak.Make(ref))
	return ref
}

// InvalidateRef severs r without removing the value it refers to. Further
// Resolve and Get calls on r fail; the handle itself remains valid. Returns
// false if r was already invalid.
func (v *Vec[T]) InvalidateRef(r *Ref[T]) bool {
	if r == nil || r.vec == nil {
		return false
	}
	if r.vec.refs != nil {
		r.vec.refs.Del(r.handle)
	}
	r.vec = nil
	r.handle = 0
	return true
}

// severRef invalidates the live ref for h, if any. Called by Remove.
func (v *Vec[T]) severRef(h Handle) {
	if v.refs == nil {
		return
	}
	weakPtr, ok := v.refs.Get(h)
	if !ok {
		return
	}
	if ref := weakPtr.Value(); ref != nil {
		ref.vec = nil
		ref.handle = 0
	}
	v.refs.Del(h)
}
