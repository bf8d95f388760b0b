// Package config defines the application configuration and its resolution
// chain: command-line flags take priority over FIBSCI_-prefixed environment
// variables, which take priority over built-in defaults.
package config

import (
	"flag"
	"fmt"
	"time"

	apperrors "github.com/agbru/fibsci/internal/errors"
	"github.com/agbru/fibsci/internal/fibonacci"
	"github.com/agbru/fibsci/internal/notation"
)

// EnvPrefix is the prefix of all environment variables read by the
// application.
const EnvPrefix = "FIBSCI_"

// Default values applied when neither a flag nor an environment variable
// provides one.
const (
	// DefaultN is the Fibonacci index used by one-shot mode when -n is
	// given without a value source. When -n is absent entirely the
	// application starts the interactive prompt instead.
	DefaultN = 10_000_000

	// DefaultAlgo is the algorithm identifier used when none is selected.
	DefaultAlgo = "doubling"

	// DefaultTimeout bounds a single calculation.
	DefaultTimeout = 5 * time.Minute

	// DefaultPort is the HTTP server listen port.
	DefaultPort = 8080
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// N is the Fibonacci index to calculate.
	N uint64
	// HasN records whether -n was given explicitly; without it the
	// application runs the interactive prompt.
	HasN bool
	// Algo selects the calculation algorithm ("doubling", "matrix", ...).
	Algo string
	// Compare runs every registered algorithm and cross-checks results.
	Compare bool
	// Timeout bounds the calculation.
	Timeout time.Duration
	// Threshold is the parallelism threshold in bits; 0 selects an
	// adaptive value based on the host CPU.
	Threshold int
	// SciThresholdExp is the power-of-ten exponent above which results
	// render in scientific notation.
	SciThresholdExp int
	// LastDigits, when positive, computes only the last K decimal digits
	// using modular arithmetic.
	LastDigits int
	// Verbose enables structured debug logging.
	Verbose bool
	// Details prints calculation metadata alongside the result.
	Details bool
	// Quiet suppresses everything except the result itself.
	Quiet bool
	// OutputFile, when set, receives the full decimal expansion.
	OutputFile string
	// Server starts the HTTP API instead of a CLI calculation.
	Server bool
	// Port is the HTTP server listen port.
	Port int
	// NoColor disables ANSI colors in terminal output.
	NoColor bool
	// ShowVersion prints build information and exits.
	ShowVersion bool
	// Completion names a shell to emit a completion script for.
	Completion string
}

// ParseConfig parses args into an AppConfig using the provided FlagSet,
// then applies environment variable overrides for flags that were not set
// on the command line.
//
// Parameters:
//   - fs: The FlagSet to define flags on; caller controls error handling.
//   - args: The command-line arguments, excluding the program name.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A parse error, already reported by fs according to its policy.
func ParseConfig(fs *flag.FlagSet, args []string) (AppConfig, error) {
	var cfg AppConfig

	fs.Uint64Var(&cfg.N, "n", DefaultN, "Fibonacci index to calculate (omit for interactive mode)")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, "calculation algorithm")
	fs.BoolVar(&cfg.Compare, "compare", false, "run all registered algorithms and cross-check their results")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "calculation timeout (e.g. 30s, 5m)")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "parallelism threshold in bits (0 = adaptive)")
	fs.IntVar(&cfg.SciThresholdExp, "sci-threshold", notation.DefaultThresholdExp, "power-of-ten exponent above which results use scientific notation")
	fs.IntVar(&cfg.LastDigits, "last-digits", 0, "compute only the last K decimal digits (0 = full value)")

	fs.BoolVar(&cfg.Verbose, "v", false, "enable verbose logging (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "enable verbose logging")
	fs.BoolVar(&cfg.Details, "d", false, "print calculation details (shorthand)")
	fs.BoolVar(&cfg.Details, "details", false, "print calculation details")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the result (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the result")
	fs.StringVar(&cfg.OutputFile, "o", "", "write the full decimal expansion to a file (shorthand)")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the full decimal expansion to a file")

	fs.BoolVar(&cfg.Server, "server", false, "start the HTTP API server")
	fs.IntVar(&cfg.Port, "port", DefaultPort, "HTTP server listen port")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")
	fs.StringVar(&cfg.Completion, "completion", "", "print a completion script for the given shell (bash, zsh, fish, powershell)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg, fs)
	cfg.HasN = isFlagSet(fs, "n") || envWasSet("N")

	return cfg, nil
}

// Validate checks the configuration for inconsistent or out-of-range
// values.
//
// Returns:
//   - error: A ConfigError describing the first violation found, or nil.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.SciThresholdExp < 0 {
		return apperrors.NewConfigError("sci-threshold must be non-negative, got %d", c.SciThresholdExp)
	}
	if c.LastDigits < 0 {
		return apperrors.NewConfigError("last-digits must be non-negative, got %d", c.LastDigits)
	}
	if c.Port < 1 || c.Port > 65535 {
		return apperrors.NewConfigError("port must be in [1, 65535], got %d", c.Port)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish", "powershell", "ps":
		default:
			return apperrors.NewConfigError("unsupported completion shell %q (supported: bash, zsh, fish, powershell)", c.Completion)
		}
	}
	return nil
}

// ToCalculationOptions converts the configuration into calculator options.
//
// Returns:
//   - fibonacci.Options: Options carrying the resolved thresholds.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{
		ParallelThreshold: c.Threshold,
	}
}

// Describe returns a single-line summary of the calculation parameters,
// used by verbose logging at startup.
func (c AppConfig) Describe() string {
	return fmt.Sprintf("n=%d algo=%s timeout=%s threshold=%d sci-threshold=%d",
		c.N, c.Algo, c.Timeout, c.Threshold, c.SciThresholdExp)
}
