// Package progress defines the progress reporting protocol shared by the
// calculators and the presentation layers.
//
// Calculators report normalized progress through a callback; the
// orchestration layer translates callbacks into ProgressUpdate messages on
// a channel consumed by the UI. The work model accounts for the geometric
// growth of multiplication cost across doubling levels: the operands double
// in size at each level, so the cost of a level is roughly four times the
// cost of the previous one.
package progress

// ProgressUpdate carries a single progress report from one calculator.
type ProgressUpdate struct {
	// CalculatorIndex identifies which calculator the update belongs to
	// when several run concurrently.
	CalculatorIndex int
	// Value is the normalized progress (0.0 to 1.0).
	Value float64
}

// ProgressCallback receives normalized progress values (0.0 to 1.0).
// Implementations must be cheap and non-blocking; they are invoked from
// the calculation hot path.
type ProgressCallback func(progress float64)

// MinReportDelta is the minimum progress change that triggers a report.
// Throttling keeps the callback overhead negligible for calculations with
// many levels.
const MinReportDelta = 0.01

// CalcTotalWork returns the total work units for a doubling-based
// calculation with the given number of levels. Level i costs 4^i units
// because operand bit lengths double at each level.
//
// Parameters:
//   - numBits: The number of doubling levels (bit length of the index).
//
// Returns:
//   - float64: The total work in abstract units.
func CalcTotalWork(numBits int) float64 {
	var total float64
	unit := 1.0
	for i := 0; i < numBits; i++ {
		total += unit
		unit *= 4
	}
	return total
}

// PrecomputePowers4 returns the per-level work units [4^0, 4^1, ...] for
// numBits levels, avoiding repeated exponentiation in the hot loop.
//
// Parameters:
//   - numBits: The number of doubling levels.
//
// Returns:
//   - []float64: The work units per level, deepest level first.
func PrecomputePowers4(numBits int) []float64 {
	powers := make([]float64, numBits)
	unit := 1.0
	for i := range powers {
		powers[i] = unit
		unit *= 4
	}
	return powers
}

// ReportStepProgress accumulates the work of one completed level and
// invokes the callback when the normalized progress advanced by at least
// MinReportDelta (or reached completion).
//
// Parameters:
//   - report: The callback to invoke (may be nil).
//   - lastReported: Pointer to the last reported value, updated in place.
//   - totalWork: The total work from CalcTotalWork.
//   - currentWork: The work completed so far.
//   - level: The level just completed (0 = deepest).
//   - powers: Per-level work units from PrecomputePowers4.
//
// Returns:
//   - float64: The updated completed work.
func ReportStepProgress(report ProgressCallback, lastReported *float64, totalWork, currentWork float64, level int, powers []float64) float64 {
	if level >= 0 && level < len(powers) {
		currentWork += powers[level]
	}
	if report == nil || totalWork <= 0 {
		return currentWork
	}
	value := currentWork / totalWork
	if value > 1.0 {
		value = 1.0
	}
	if value-*lastReported >= MinReportDelta || value >= 1.0 {
		*lastReported = value
		report(value)
	}
	return currentWork
}
