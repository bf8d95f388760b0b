package fibonacci

import (
	"context"
	"math/big"
	"sync"

	"github.com/agbru/fibsci/internal/progress"
)

func init() {
	RegisterCalculator("doubling", func() coreCalculator { return &OptimizedFastDoubling{} })
}

// OptimizedFastDoubling computes F(n) with the recursive fast doubling
// algorithm:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)² + F(k+1)²
//
// Each level performs two independent big-integer products; once the
// operands exceed Options.ParallelThreshold bits, the two products run as
// concurrent tasks that are joined before the level completes. The recursion
// descends to k = 0 by halving, so the depth — and the number of levels — is
// the bit length of n.
type OptimizedFastDoubling struct{}

// Name returns the identifier of the algorithm.
//
// Returns:
//   - string: The constant "doubling".
func (fd *OptimizedFastDoubling) Name() string { return "doubling" }

// CalculateCore computes F(n) using recursive fast doubling.
//
// Parameters:
//   - ctx: Context controlling cancellation; checked once per level.
//   - report: Progress callback invoked with values in [0, 1].
//   - n: The Fibonacci index to compute.
//   - opts: Tuning parameters.
//
// Returns:
//   - *big.Int: The computed Fibonacci number F(n).
//   - error: The context error if the calculation was cancelled.
func (fd *OptimizedFastDoubling) CalculateCore(ctx context.Context, report progress.ProgressCallback, n uint64, opts Options) (*big.Int, error) {
	if f := fibSmall(n); f != nil {
		return f, nil
	}
	opts = opts.normalize()

	numSteps := numDoublingSteps(n)
	s := &doublingState{
		threshold:    opts.ParallelThreshold,
		report:       report,
		totalWork:    progress.CalcTotalWork(numSteps),
		powers:       progress.PrecomputePowers4(numSteps),
		lastReported: 0,
	}

	fn, _, err := s.fibPair(ctx, n)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// doublingState carries the parameters and progress accounting of one
// calculation through the recursion. Progress fields are only touched on
// the unwind path, which is sequential, so no synchronization is needed.
type doublingState struct {
	threshold int
	report    progress.ProgressCallback

	totalWork    float64
	currentWork  float64
	lastReported float64
	powers       []float64
	level        int
}

// fibPair returns the pair (F(k), F(k+1)).
//
// The doubling step derives the pair for k from the pair for k/2:
//
//	c = F(2j)   = a * (2b - a)
//	d = F(2j+1) = a² + b²
//
// where (a, b) = (F(j), F(j+1)) and j = k/2. When k is odd the pair shifts
// one position to (d, c+d). The products c and d are independent, so above
// the parallel threshold they are evaluated as two concurrent tasks.
func (s *doublingState) fibPair(ctx context.Context, k uint64) (*big.Int, *big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if k == 0 {
		return big.NewInt(0), big.NewInt(1), nil
	}

	a, b, err := s.fibPair(ctx, k>>1)
	if err != nil {
		return nil, nil, err
	}

	// t = 2b - a, shared operand of the even-index product.
	t := new(big.Int).Lsh(b, 1)
	t.Sub(t, a)

	c := new(big.Int)
	d := new(big.Int)

	if a.BitLen() >= s.threshold {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Mul(a, t)
		}()
		go func() {
			defer wg.Done()
			sq := new(big.Int).Mul(a, a)
			d.Mul(b, b)
			d.Add(d, sq)
		}()
		wg.Wait()
	} else {
		c.Mul(a, t)
		d.Mul(a, a)
		t.Mul(b, b)
		d.Add(d, t)
	}

	s.currentWork = progress.ReportStepProgress(s.report, &s.lastReported, s.totalWork, s.currentWork, s.level, s.powers)
	s.level++

	if k&1 == 0 {
		return c, d, nil
	}
	return d, new(big.Int).Add(c, d), nil
}
