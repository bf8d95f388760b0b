package cli

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibsci/internal/format"
	"github.com/agbru/fibsci/internal/notation"
	"github.com/agbru/fibsci/internal/orchestration"
	"github.com/agbru/fibsci/internal/progress"
	"github.com/agbru/fibsci/internal/ui"
)

// DisplayProgress consumes progress updates from the calculation goroutines
// and renders a spinner with an aggregated progress bar and ETA. It runs until
// the progress channel is closed and signals completion through wg.
//
// Parameters:
//   - wg: WaitGroup signaled when the display loop exits.
//   - progressChan: Channel delivering per-calculator progress updates.
//   - numCalculators: Number of calculators being tracked.
//   - out: The writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()

	if numCalculators <= 0 {
		return
	}

	spin := newSpinner(spinner.WithWriter(out))
	spin.Start()
	defer spin.Stop()

	tracker := orchestration.NewProgressAggregator(numCalculators)
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var (
		avg float64
		eta time.Duration
	)
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				spin.UpdateSuffix(" " + format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth))
				return
			}
			agg := tracker.Update(update)
			avg, eta = agg.AverageProgress, agg.ETA
		case <-ticker.C:
			spin.UpdateSuffix(" " + format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
		}
	}
}

// DisplayResult prints the outcome of a calculation. The headline value uses
// exact decimal notation up to the scientific threshold and truncating
// scientific notation beyond it. The details flag adds a timing and size
// analysis; showValue prints the exact decimal expansion, abridged past
// TruncationLimit digits unless verbose is set.
//
// Parameters:
//   - result: The calculated Fibonacci number.
//   - n: The index of the Fibonacci number.
//   - duration: The calculation duration.
//   - verbose: Display the full decimal expansion without truncation.
//   - details: Display the detailed analysis block.
//   - showValue: Display the decimal expansion of the result.
//   - out: The writer for standard output.
func DisplayResult(result *big.Int, n uint64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if result == nil {
		return
	}

	fmt.Fprintf(out, "\n%sF(%s)%s = %s%s%s\n",
		ui.ColorMagenta(), format.FormatUint(n), ui.ColorReset(),
		ui.ColorGreen(), notation.Render(result), ui.ColorReset())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time:   %s%s%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Result binary size: %s%s%s bits\n",
			ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(result.BitLen())), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:   %s%s%s\n",
			ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(notation.DigitCount(result))), ui.ColorReset())
	}

	if showValue {
		displayDecimalValue(result, n, verbose, out)
	}
}

// displayDecimalValue writes the exact decimal expansion of the result,
// abridging it to the leading and trailing DisplayEdges digits when it
// exceeds TruncationLimit digits and verbose is not set.
func displayDecimalValue(result *big.Int, n uint64, verbose bool, out io.Writer) {
	decimal := result.String()
	fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())

	if !verbose && len(decimal) > TruncationLimit {
		fmt.Fprintf(out, "F(%s) = %s...%s (truncated)\n",
			format.FormatUint(n),
			decimal[:DisplayEdges],
			decimal[len(decimal)-DisplayEdges:])
		fmt.Fprintf(out, "%sTip: use -v to display the full value.%s\n", ui.ColorYellow(), ui.ColorReset())
		return
	}

	fmt.Fprintf(out, "F(%s) = %s\n", format.FormatUint(n), format.FormatNumberString(decimal))
}
