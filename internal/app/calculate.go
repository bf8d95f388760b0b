package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fibsci/internal/cli"
	apperrors "github.com/agbru/fibsci/internal/errors"
	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/metrics"
	"github.com/agbru/fibsci/internal/orchestration"
	"github.com/agbru/fibsci/internal/ui"
)

// runCalculate orchestrates the execution of a one-shot CLI calculation.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Partial computation mode: last K digits only
	if a.Config.LastDigits > 0 {
		return a.runLastDigits(ctx, out)
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Unknown algorithm %q (available: %v)\n", a.Config.Algo, a.Factory.List())
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.N,
		a.Config.ToCalculationOptions(), progressReporter, progressOut)

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.Verbose,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// runLastDigits computes only the last K decimal digits of F(N) using modular
// arithmetic, requiring O(K) memory regardless of N.
func (a *Application) runLastDigits(_ context.Context, out io.Writer) int {
	k := a.Config.LastDigits
	n := a.Config.N

	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Computing last %d digits of F(%d)...\n", k, n)
	}

	start := time.Now()
	result, err := fibonacci.FastDoublingMod(n, mod)
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	digits := result.String()

	if a.Config.Quiet {
		fmt.Fprintln(out, digits)
	} else {
		fmt.Fprintf(out, "Last %d digits of F(%d): %s\n", k, n, digits)
		fmt.Fprintf(out, "Computed in %s\n", elapsed.Round(time.Millisecond))
	}

	return apperrors.ExitSuccess
}

// analyzeResultsWithOutput presents the calculation results, writes the result
// file when requested and maps failures to exit codes.
func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	// Quiet mode prints the raw value only
	if outputCfg.Quiet && bestResult != nil {
		cli.DisplayQuietResult(out, bestResult.Result, a.Config.N, bestResult.Duration)

		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}

		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		N:         a.Config.N,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: outputCfg.ShowValue,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if a.Config.Details && !a.Config.Quiet {
		snap := metrics.NewMemoryCollector().Snapshot()
		cli.DisplayMemoryStats(snap.HeapAlloc, snap.TotalAlloc, snap.NumGC, snap.PauseTotalNs, out)
	}

	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// findBestResult returns the fastest successful result, or nil if none succeeded.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.N, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
