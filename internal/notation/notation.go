// Package notation renders arbitrarily large non-negative integers for
// human consumption. Values up to a configurable power-of-ten threshold are
// rendered as their exact decimal expansion; larger values switch to a
// truncating scientific notation with a fixed number of significant digits,
// the only representation that stays readable once a Fibonacci number runs
// to millions of digits.
package notation

import (
	"fmt"
	"math/big"

	"github.com/agbru/fibsci/internal/format"
)

const (
	// SignificantDigits is the number of significant digits kept by the
	// scientific notation. The mantissa is truncated, never rounded, so
	// the rendered digits are always an exact prefix of the value.
	SignificantDigits = 5

	// DefaultThresholdExp is the default power-of-ten exponent of the
	// exact/scientific boundary. Values up to 10^35 (36 digits) render
	// exactly; strictly greater values switch to scientific notation.
	DefaultThresholdExp = 35
)

// log10Of2 converts a binary magnitude to an approximate decimal one.
// The approximation always lands within one of the true digit count, which
// the exact power-of-ten comparison below then corrects.
const log10Of2 = 0.30102999566398114

var big10 = big.NewInt(10)

// ThresholdForExp returns the exact/scientific boundary value 10^exp.
//
// Parameters:
//   - exp: The power-of-ten exponent, must be non-negative.
//
// Returns:
//   - *big.Int: The threshold value 10^exp.
func ThresholdForExp(exp int) *big.Int {
	if exp < 0 {
		exp = 0
	}
	return new(big.Int).Exp(big10, big.NewInt(int64(exp)), nil)
}

// Renderer renders big integers, switching representations at a fixed
// threshold. The zero value is not usable; construct with NewRenderer.
type Renderer struct {
	threshold *big.Int
}

// NewRenderer returns a Renderer whose exact/scientific boundary is 10^exp.
//
// Parameters:
//   - exp: The power-of-ten exponent of the boundary.
//
// Returns:
//   - *Renderer: The configured renderer.
func NewRenderer(exp int) *Renderer {
	return &Renderer{threshold: ThresholdForExp(exp)}
}

// NewDefaultRenderer returns a Renderer using DefaultThresholdExp.
func NewDefaultRenderer() *Renderer {
	return NewRenderer(DefaultThresholdExp)
}

// Render returns the representation of v: the exact decimal expansion when
// v <= threshold, scientific notation when v is strictly greater.
//
// Parameters:
//   - v: The value to render; must be non-negative.
//
// Returns:
//   - string: The rendered value.
func (r *Renderer) Render(v *big.Int) string {
	if v.Cmp(r.threshold) <= 0 {
		return v.String()
	}
	return Scientific(v)
}

// Render renders v with the default threshold of 10^DefaultThresholdExp.
func Render(v *big.Int) string {
	return NewDefaultRenderer().Render(v)
}

// Scientific renders v as truncating scientific notation with
// SignificantDigits significant digits, in the form "D.DDDDe+E" where E is
// the decimal exponent (one less than the digit count of v), grouped with
// thousand separators once it grows large.
//
// The exponent is first approximated from the bit length via log10(2), then
// corrected by comparing v against the exact power of ten, so the result is
// exact despite the floating-point shortcut. Zero renders as "0.0e0".
//
// Parameters:
//   - v: The value to render; must be non-negative.
//
// Returns:
//   - string: The scientific notation of v.
func Scientific(v *big.Int) string {
	if v.Sign() == 0 {
		return "0.0e0"
	}

	// Approximate the exponent from the bit length, then correct against
	// the exact power of ten. The approximation can be off by one in
	// either direction, never more.
	exponent := int64(float64(v.BitLen()) * log10Of2)
	power := new(big.Int).Exp(big10, big.NewInt(exponent), nil)

	switch v.Cmp(power) {
	case -1:
		exponent--
		power.Quo(power, big10)
	case 1:
		next := new(big.Int).Mul(power, big10)
		if next.Cmp(v) <= 0 {
			exponent++
			power.Set(next)
		}
	}

	// Extract the leading significant digits by shifting away the rest.
	shift := exponent - (SignificantDigits - 1)
	leading := new(big.Int)
	if shift >= 0 {
		divisor := new(big.Int).Exp(big10, big.NewInt(shift), nil)
		leading.Quo(v, divisor)
	} else {
		multiplier := new(big.Int).Exp(big10, big.NewInt(-shift), nil)
		leading.Mul(v, multiplier)
	}

	// Renormalize so the mantissa holds exactly SignificantDigits digits.
	// Each shift of the mantissa moves the exponent in the opposite
	// direction.
	upperBound := new(big.Int).Exp(big10, big.NewInt(SignificantDigits), nil)
	lowerBound := new(big.Int).Exp(big10, big.NewInt(SignificantDigits-1), nil)
	for leading.Cmp(upperBound) >= 0 {
		leading.Quo(leading, big10)
		exponent++
	}
	for leading.Cmp(lowerBound) < 0 {
		leading.Mul(leading, big10)
		exponent--
	}

	// Split the mantissa into "D.DDDD".
	divider := new(big.Int).Set(lowerBound)
	integerPart := new(big.Int)
	decimalsPart := new(big.Int)
	integerPart.QuoRem(leading, divider, decimalsPart)

	return fmt.Sprintf("%s.%04de+%s",
		integerPart,
		decimalsPart,
		format.FormatNumberString(fmt.Sprintf("%d", exponent)))
}

// DigitCount returns the number of decimal digits of v without converting
// it to a decimal string, using the same approximate-then-correct scheme as
// Scientific. Zero is counted as one digit.
//
// Parameters:
//   - v: The value to measure; must be non-negative.
//
// Returns:
//   - int: The decimal digit count of v.
func DigitCount(v *big.Int) int {
	if v.Sign() == 0 {
		return 1
	}

	exponent := int64(float64(v.BitLen()) * log10Of2)
	power := new(big.Int).Exp(big10, big.NewInt(exponent), nil)

	switch v.Cmp(power) {
	case -1:
		exponent--
	case 1:
		next := new(big.Int).Mul(power, big10)
		if next.Cmp(v) <= 0 {
			exponent++
		}
	}
	return int(exponent) + 1
}
