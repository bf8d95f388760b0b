package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants control the behavior of adaptive algorithms and are based on
// empirical benchmarks across various hardware configurations.

const (
	// DefaultParallelThreshold is the default bit size threshold at which
	// the two large-integer products of a doubling step are dispatched to
	// separate goroutines. Below this threshold, the overhead of goroutine
	// creation exceeds the benefits of parallelism.
	//
	// Empirically determined: 4096 bits provides optimal performance on most
	// modern multi-core CPUs for Fibonacci calculations.
	DefaultParallelThreshold = 4096
)

// ─────────────────────────────────────────────────────────────────────────────
// Progress Reporting Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// FibonacciGrowthFactor is log2(phi), where phi ≈ 1.618 (golden ratio).
	// Used to estimate the bit length of F(n).
	FibonacciGrowthFactor = 0.69424
)
