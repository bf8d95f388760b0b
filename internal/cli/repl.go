// Package cli provides the terminal presentation layer: the interactive
// prompt, one-shot result display, progress rendering, and shell
// completion scripts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/format"
	"github.com/agbru/fibsci/internal/notation"
	"github.com/agbru/fibsci/internal/parallel"
	"github.com/agbru/fibsci/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// DefaultAlgo is the default algorithm to use for calculations.
	DefaultAlgo string
	// Timeout is the maximum duration for each calculation.
	Timeout time.Duration
	// Threshold is the parallelism threshold.
	Threshold int
	// SciThresholdExp is the power-of-ten exponent above which results
	// render in scientific notation.
	SciThresholdExp int
}

// REPL represents an interactive Fibonacci calculator session.
type REPL struct {
	config      REPLConfig
	registry    map[string]fibonacci.Calculator
	renderer    *notation.Renderer
	currentAlgo string
	forceSci    bool
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - registry: Map of available calculators.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(registry map[string]fibonacci.Calculator, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if _, ok := registry[currentAlgo]; !ok {
		// Pick any available algorithm as default
		for name := range registry {
			currentAlgo = name
			break
		}
	}

	return &REPL{
		config:      config,
		registry:    registry,
		renderer:    notation.NewRenderer(config.SciThresholdExp),
		currentAlgo: currentAlgo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input
// and processes it until the user exits or EOF is reached. A bare number
// calculates F(n); everything else is treated as a command.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"Enter Fibonacci number index (or 'q' to quit): "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processInput(input) {
			return // Exit requested
		}
	}
}

// printBanner displays the welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %s🔢 Fibonacci Calculator - Interactive Mode%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter a number to calculate its Fibonacci value. Other commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s   - Change algorithm (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %scompare <n>%s   - Compare all algorithms for F(n)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slist%s          - List available algorithms\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssci%s           - Toggle forced scientific notation\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %sq%s      - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getAlgoList returns a comma-separated list of available algorithms.
func (r *REPL) getAlgoList() string {
	algos := make([]string, 0, len(r.registry))
	for name := range r.registry {
		algos = append(algos, name)
	}
	return strings.Join(algos, ", ")
}

// processInput interprets one line of user input.
// Returns false if the session should end.
func (r *REPL) processInput(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	// A bare number is the primary interaction.
	if n, err := strconv.ParseUint(cmd, 10, 64); err == nil {
		r.calculate(n)
		return true
	}

	switch cmd {
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "sci":
		r.cmdSci()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sPlease enter a valid number.%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}

	return true
}

// calculate performs a Fibonacci calculation with the current algorithm and
// displays the rendered result with separate compute and render timings.
func (r *REPL) calculate(n uint64) {
	calc, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sAlgorithm not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating F(%s%s%s) with %s%s%s...\n",
		ui.ColorMagenta(), format.FormatUint(n), ui.ColorReset(),
		ui.ColorCyan(), calc.Name(), ui.ColorReset())

	opts := fibonacci.Options{
		ParallelThreshold: r.config.Threshold,
	}

	progressChan := make(chan fibonacci.ProgressUpdate, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	computeStart := time.Now()
	result, err := calc.Calculate(ctx, progressChan, 0, n, opts)
	computeDuration := time.Since(computeStart)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	renderStart := time.Now()
	var rendered string
	if r.forceSci {
		rendered = notation.Scientific(result)
	} else {
		rendered = r.renderer.Render(result)
	}
	renderDuration := time.Since(renderStart)

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  F(%s) = %s%s%s\n", format.FormatUint(n), ui.ColorGreen(), rendered, ui.ColorReset())
	fmt.Fprintf(r.out, "  Bits:    %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Digits:  %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(strconv.Itoa(notation.DigitCount(result))), ui.ColorReset())
	fmt.Fprintf(r.out, "  Compute: %s%s%s   Render: %s%s%s\n",
		ui.ColorGreen(), FormatExecutionDuration(computeDuration), ui.ColorReset(),
		ui.ColorGreen(), FormatExecutionDuration(renderDuration), ui.ColorReset())
	fmt.Fprintln(r.out)
}

// cmdAlgo handles the "algo" command.
func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", r.getAlgoList())
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

// cmdCompare handles the "compare" command. All algorithms run concurrently
// on the same index and their results are cross-checked.
func (r *REPL) cmdCompare(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: compare <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sPlease enter a valid number.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for F(%s):%s\n", ui.ColorBold(), format.FormatUint(n), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	opts := fibonacci.Options{
		ParallelThreshold: r.config.Threshold,
	}

	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)

	type compareOutcome struct {
		result   *big.Int
		duration time.Duration
		err      error
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	outcomes := make([]compareOutcome, len(names))
	var collector parallel.ErrorCollector
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, calc fibonacci.Calculator) {
			defer wg.Done()
			start := time.Now()
			result, err := calc.Calculate(ctx, nil, i, n, opts)
			outcomes[i] = compareOutcome{result: result, duration: time.Since(start), err: err}
			collector.SetError(err)
		}(i, r.registry[name])
	}
	wg.Wait()

	var firstResult *big.Int
	for i, name := range names {
		oc := outcomes[i]
		if oc.err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(),
				ui.ColorRed(), oc.err, ui.ColorReset())
			continue
		}

		if firstResult == nil {
			firstResult = oc.result
		}

		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if oc.result.Cmp(firstResult) != 0 {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}

		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), FormatExecutionDuration(oc.duration), ui.ColorReset(),
			status)
	}

	if firstResult != nil {
		fmt.Fprintf(r.out, "  F(%s) = %s%s%s\n", format.FormatUint(n),
			ui.ColorGreen(), r.renderer.Render(firstResult), ui.ColorReset())
	}
	if collector.Err() != nil {
		fmt.Fprintf(r.out, "  %sSome algorithms failed; comparison is partial.%s\n",
			ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdList handles the "list" command.
func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable algorithms:%s\n", ui.ColorBold(), ui.ColorReset())
	for name := range r.registry {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdSci toggles forced scientific notation.
func (r *REPL) cmdSci() {
	r.forceSci = !r.forceSci
	status := "disabled"
	if r.forceSci {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Forced scientific notation: %s%s%s\n", ui.ColorGreen(), status, ui.ColorReset())
}

// cmdStatus displays the current session configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:      %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Threshold:      %s%d%s bits\n", ui.ColorCyan(), r.config.Threshold, ui.ColorReset())
	fmt.Fprintf(r.out, "  Sci boundary:   %s10^%d%s\n", ui.ColorCyan(), r.config.SciThresholdExp, ui.ColorReset())
	sciStatus := "no"
	if r.forceSci {
		sciStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Forced sci:     %s%s%s\n", ui.ColorCyan(), sciStatus, ui.ColorReset())
	fmt.Fprintln(r.out)
}
