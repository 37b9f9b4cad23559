package slotvec

// Handle encodes both the slot index (upper 32 bits) and the slot's version
// at insertion time (lower 32 bits). A Handle stays valid across insertions
// and removals of other values; presenting it after its own value was removed
// is detected through the version half.
//
// The version is 32 bits wide and wraps after ~4.3 billion reuse cycles of a
// single slot, at which point a handle stale by exactly that many cycles
// would match again. This is accepted as residual risk, not guarded against.
type Handle uint64

// NewHandle creates a Handle from a slot index and a version
func NewHandle(slot uint32, version uint32) Handle {
	return Handle(uint64(slot)<<32 | uint64(version))
}

// Slot extracts the slot index from the handle
func (h Handle) Slot() uint32 {
	return uint32(h >> 32)
}

// Version extracts the version from the handle
func (h Handle) Version() uint32 {
	return uint32(h & 0xFFFFFFFF)
}
