package slotvec_test

// Shared value type for tests and benchmarks.

type particle struct {
	X, Y float32
}
