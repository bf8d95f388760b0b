// Progress aggregation and ETA estimation for long-running calculations.

package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState encapsulates the aggregated progress of concurrent calculations.
// It maintains the individual progress of each calculator and computes the
// average, which is essential for providing a consolidated progress view when
// multiple algorithms are running in parallel.
type ProgressState struct {
	progresses     []float64
	numCalculators int
}

// NewProgressState creates and initializes a new ProgressState.
// It sets up the internal storage for tracking the progress of a specified
// number of calculators.
//
// Parameters:
//   - numCalculators: The number of calculators to track.
//
// Returns:
//   - *ProgressState: A pointer to the new progress state object.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{
		progresses:     make([]float64, numCalculators),
		numCalculators: numCalculators,
	}
}

// Update records a new progress value for a specific calculator.
// The method ensures that updates are only applied for valid calculator
// indices.
//
// Parameters:
//   - index: The index of the calculator (0 to numCalculators-1).
//   - value: The progress value (0.0 to 1.0).
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked calculators.
// This is used to display a single, consolidated progress bar to the user,
// representing the overall progress of the application.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var totalProgress float64
	for _, p := range ps.progresses {
		totalProgress += p
	}
	if ps.numCalculators == 0 {
		return 0.0
	}
	return totalProgress / float64(ps.numCalculators)
}

// ProgressWithETA extends ProgressState with an estimate of the time
// remaining, derived from the observed progress rate. The rate is smoothed
// with an exponential moving average so momentary stalls do not make the
// ETA oscillate wildly.
type ProgressWithETA struct {
	*ProgressState
	numCalculators int
	startTime      time.Time
	lastUpdateTime time.Time
	lastProgress   float64
	progressRate   float64 // fraction of total work per second
}

// etaSmoothingFactor is the EMA weight applied to the newest rate sample.
const etaSmoothingFactor = 0.3

// NewProgressWithETA creates a progress tracker with ETA estimation for the
// given number of calculators.
//
// Parameters:
//   - numCalculators: The number of calculators to track.
//
// Returns:
//   - *ProgressWithETA: A pointer to the new tracker.
func NewProgressWithETA(numCalculators int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState:  NewProgressState(numCalculators),
		numCalculators: numCalculators,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// UpdateWithETA records a progress value and refreshes the rate estimate.
//
// Parameters:
//   - index: The index of the calculator.
//   - value: The progress value (0.0 to 1.0).
//
// Returns:
//   - float64: The new average progress across all calculators.
//   - time.Duration: The current ETA (0 when not yet computable).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdateTime).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		instantRate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instantRate
		} else {
			p.progressRate = etaSmoothingFactor*instantRate + (1-etaSmoothingFactor)*p.progressRate
		}
		p.lastUpdateTime = now
		p.lastProgress = avg
	}

	return avg, p.GetETA()
}

// GetETA returns the estimated time remaining based on the smoothed
// progress rate. It returns 0 when no rate has been observed yet.
//
// Returns:
//   - time.Duration: The estimated time remaining.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	return time.Duration(remaining / p.progressRate * float64(time.Second))
}

// FormatETA renders an ETA duration in a compact human-readable form.
// Durations at or below zero display as "calculating..." because no
// meaningful estimate exists yet.
//
// Parameters:
//   - eta: The estimated time remaining.
//
// Returns:
//   - string: The formatted ETA string.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatProgressBarWithETA renders a textual progress bar followed by the
// percentage and the formatted ETA.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - eta: The estimated time remaining.
//   - width: The character width of the bar.
//
// Returns:
//   - string: The combined progress bar string.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(width))
	var builder strings.Builder
	builder.Grow(width)
	for i := 0; i < width; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return fmt.Sprintf("[%s] %6.2f%% ETA: %s", builder.String(), progress*100, FormatETA(eta))
}
