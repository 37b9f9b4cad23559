package slotvec

// Stats is a point-in-time snapshot of a Vec's storage layout.
type Stats struct {
	// Len is the number of occupied slots.
	Len int
	// Free is the number of vacant slots awaiting reuse.
	Free int
	// Slots is the total slot count, occupied and free. It only ever grows.
	Slots int
	// Capacity is the allocated storage, in slots.
	Capacity int
	// FreeListDepth is the length of the free chain walked link by link.
	// It always equals Free; a mismatch means corrupted internal state.
	FreeListDepth int
}

// CollectStats gathers storage statistics. O(n) in total slots.
func (v *Vec[T]) CollectStats() Stats {
	depth := 0
	for p := v.nextFree; p != len(v.entries); p = v.entries[p].next {
		depth++
	}

	return Stats{
		Len:           v.length,
		Free:          len(v.entries) - v.length,
		Slots:         len(v.entries),
		Capacity:      cap(v.entries),
		FreeListDepth: depth,
	}
}
