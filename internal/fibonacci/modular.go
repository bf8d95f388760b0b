package fibonacci

import (
	"fmt"
	"math/big"
	"math/bits"
)

// FastDoublingMod computes F(n) mod m with the iterative fast doubling
// algorithm. All intermediates are reduced modulo m, so memory stays at
// O(log m) regardless of n; this is how the last K decimal digits of F(n)
// are obtained for indices far beyond what a full calculation could hold.
//
// Uses the identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))  mod m
//	F(2k+1) = F(k+1)² + F(k)²            mod m
//
// Parameters:
//   - n: The Fibonacci index.
//   - m: The modulus; must be positive.
//
// Returns:
//   - *big.Int: F(n) mod m, in [0, m).
//   - error: An error if m is nil or not positive.
func FastDoublingMod(n uint64, m *big.Int) (*big.Int, error) {
	if m == nil || m.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive")
	}
	if n == 0 {
		return big.NewInt(0), nil
	}

	a := big.NewInt(0) // F(k) mod m
	b := big.NewInt(1) // F(k+1) mod m
	t1 := new(big.Int)
	t2 := new(big.Int)

	for i := bits.Len64(n) - 1; i >= 0; i-- {
		// t1 = a * (2b - a) mod m = F(2k)
		t1.Lsh(b, 1)
		t1.Sub(t1, a)
		t1.Mod(t1, m)
		if t1.Sign() < 0 {
			t1.Add(t1, m)
		}
		t1.Mul(t1, a)
		t1.Mod(t1, m)

		// t2 = b² + a² mod m = F(2k+1)
		t2.Mul(b, b)
		a.Mul(a, a)
		t2.Add(t2, a)
		t2.Mod(t2, m)

		a.Set(t1)
		b.Set(t2)

		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			t1.Mod(t1, m)
			a.Set(b)
			b.Set(t1)
		}
	}

	return a, nil
}
