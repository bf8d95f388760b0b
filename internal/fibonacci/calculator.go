// Package fibonacci implements calculators for arbitrarily large Fibonacci
// numbers. The main algorithm is a recursive fast doubling scheme whose two
// big-integer products per level run as concurrent tasks, with alternative
// implementations (matrix exponentiation, and GMP-backed doubling under the
// "gmp" build tag) registered alongside it for cross-checking and
// benchmarking.
package fibonacci

import (
	"context"
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/fibsci/internal/errors"
	"github.com/agbru/fibsci/internal/progress"
)

// ─────────────────────────────────────────────────────────────────────────────
// Interfaces
// ─────────────────────────────────────────────────────────────────────────────

// Calculator is the public interface of a Fibonacci calculator. It reports
// its progress through a channel so that several calculators can run side by
// side and feed a shared display.
type Calculator interface {
	// Calculate computes F(n).
	//
	// Parameters:
	//   - ctx: Context controlling cancellation and timeout.
	//   - progressChan: Channel receiving progress updates, may be nil.
	//   - calculatorIndex: Index identifying this calculator in progress updates.
	//   - n: The Fibonacci index to compute.
	//   - opts: Tuning parameters; zero-valued fields use their defaults.
	//
	// Returns:
	//   - *big.Int: The computed Fibonacci number F(n).
	//   - error: An error if the calculation failed or was cancelled.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calculatorIndex int, n uint64, opts Options) (*big.Int, error)

	// Name returns the identifier of the underlying algorithm.
	Name() string
}

// coreCalculator is the internal interface implemented by each algorithm.
// Implementations report progress through a plain callback and leave the
// channel plumbing to the wrapper returned by NewCalculator.
type coreCalculator interface {
	// CalculateCore computes F(n), invoking report with values in [0, 1]
	// as the calculation advances.
	CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64, opts Options) (*big.Int, error)

	// Name returns the identifier of the algorithm.
	Name() string
}

// ─────────────────────────────────────────────────────────────────────────────
// Wrapper
// ─────────────────────────────────────────────────────────────────────────────

// calcWrapper adapts a coreCalculator to the Calculator interface. It
// translates callback-style progress into channel updates, throttled by
// progress.MinReportDelta, and wraps failures in a CalculationError.
type calcWrapper struct {
	core coreCalculator
}

// NewCalculator wraps a core algorithm implementation into a Calculator.
//
// Parameters:
//   - core: The algorithm implementation to wrap.
//
// Returns:
//   - Calculator: A calculator that handles progress channel plumbing and
//     error wrapping on behalf of the core implementation.
func NewCalculator(core coreCalculator) Calculator {
	return &calcWrapper{core: core}
}

// Name returns the identifier of the wrapped algorithm.
func (w *calcWrapper) Name() string { return w.core.Name() }

// Calculate computes F(n) by delegating to the wrapped core algorithm.
//
// Progress updates are forwarded to progressChan (when non-nil) using
// non-blocking sends: a slow consumer drops intermediate updates rather than
// stalling the calculation. A final update of 1.0 is always attempted on
// success.
func (w *calcWrapper) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calculatorIndex int, n uint64, opts Options) (*big.Int, error) {
	opts = opts.normalize()

	lastSent := -1.0
	report := func(p float64) {
		if progressChan == nil {
			return
		}
		if p < 1.0 && p-lastSent < progress.MinReportDelta {
			return
		}
		select {
		case progressChan <- progress.ProgressUpdate{CalculatorIndex: calculatorIndex, Value: p}:
			lastSent = p
		default:
		}
	}

	result, err := w.core.CalculateCore(ctx, report, n, opts)
	if err != nil {
		if apperrors.IsContextError(err) {
			return nil, err
		}
		return nil, apperrors.CalculationError{Cause: err}
	}

	report(1.0)
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared helpers
// ─────────────────────────────────────────────────────────────────────────────

// fibSmall returns F(n) for the trivial base cases n < 2, and nil otherwise.
func fibSmall(n uint64) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	return nil
}

// estimateBitLen returns an estimate of the bit length of F(n), derived from
// the growth factor log2(phi). Used to size progress models and buffers.
func estimateBitLen(n uint64) int {
	if n < 2 {
		return 1
	}
	return int(float64(n)*FibonacciGrowthFactor) + 1
}

// numDoublingSteps returns the number of doubling levels needed for index n.
func numDoublingSteps(n uint64) int {
	return bits.Len64(n)
}
