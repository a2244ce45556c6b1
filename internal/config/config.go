// Package config defines the runtime configuration of rangeprint and parses
// it from the command line and the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/agbru/rangeprint/internal/errors"
	"github.com/agbru/rangeprint/internal/logging"
)

// EnvPrefix is the prefix for all environment variables read by rangeprint.
const EnvPrefix = "RANGEPRINT_"

// ErrVersion is returned by ParseConfig when the version banner is requested
// in place of a run.
var ErrVersion = errors.New("version requested")

// Defaults for the ambient settings.
const (
	DefaultMaxWorkers = 0
	DefaultMaxUnits   = 0
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = logging.FormatConsole
)

// AppConfig aggregates the configuration of a single run.
type AppConfig struct {
	// Count is the number of workers to spawn.
	Count int
	// MaxWorkers optionally bounds the descriptor allocation; larger counts
	// fail with an allocation error before anything is allocated. Zero means
	// no bound.
	MaxWorkers int
	// MaxUnits limits the number of concurrently live units. Zero means no
	// limit. A spawn that would exceed the limit fails.
	MaxUnits int
	// LogLevel is a zerolog level name.
	LogLevel string
	// LogFormat is "console", "json" or "text".
	LogFormat string
	// MetricsFile, when set, receives the Prometheus text exposition of the
	// run's metrics once the run completes.
	MetricsFile string
}

// Validate checks the ambient settings. The worker count itself is checked
// while parsing so that its failure keeps its own category.
func (c AppConfig) Validate() error {
	if c.MaxWorkers < 0 {
		return apperrors.NewUsageError("--max-workers must be non-negative, got %d", c.MaxWorkers)
	}
	if c.MaxUnits < 0 {
		return apperrors.NewUsageError("--max-units must be non-negative, got %d", c.MaxUnits)
	}
	switch c.LogFormat {
	case logging.FormatConsole, logging.FormatJSON, logging.FormatText:
	default:
		return apperrors.NewUsageError("--log-format must be %q, %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, logging.FormatText, c.LogFormat)
	}
	return nil
}

// ParseConfig parses the command-line arguments (without the program name)
// into an AppConfig. Environment variables fill in any flag that was not set
// explicitly. Exactly one positional argument, the worker count, is expected;
// RANGEPRINT_COUNT stands in for it when no positional argument is given.
//
// Returns flag.ErrHelp (after printing the usage to errWriter) when -h or
// --help is given, ErrVersion when --version or -V is the whole command line,
// a UsageError for malformed command lines and a CountError
// for a negative count.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.IntVar(&cfg.MaxWorkers, "max-workers", DefaultMaxWorkers, "Largest worker count the coordinator will allocate for (0 = no bound).")
	fs.IntVar(&cfg.MaxUnits, "max-units", DefaultMaxUnits, "Maximum number of concurrently live workers (0 = unlimited).")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level (trace, debug, info, warn, error, disabled).")
	fs.StringVar(&cfg.LogFormat, "log-format", DefaultLogFormat, "Log format on stderr (console, json or text).")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")
	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "Print the version and exit.")
	fs.BoolVar(&showVersion, "V", false, "Shorthand for --version.")

	if err := fs.Parse(normalizeArgs(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(errWriter, fs)
			return cfg, err
		}
		return cfg, apperrors.UsageError{Message: err.Error()}
	}

	// Flag parsing stops at the first positional argument, so a -V after the
	// count is never seen here and ends up as an extra argument.
	if showVersion {
		if fs.NArg() > 0 {
			return cfg, apperrors.NewUsageError("--version does not take a worker count")
		}
		return cfg, ErrVersion
	}

	applyEnvOverrides(&cfg, fs)

	count, err := parseCount(fs.Args())
	if err != nil {
		return cfg, err
	}
	cfg.Count = count

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseCount extracts the worker count from the positional arguments.
func parseCount(positional []string) (int, error) {
	var raw string
	switch len(positional) {
	case 0:
		raw = getEnvString("COUNT", "")
		if raw == "" {
			return 0, apperrors.NewUsageError("missing worker count")
		}
	case 1:
		raw = positional[0]
	default:
		return 0, apperrors.NewUsageError("expected exactly one worker count, got %d arguments", len(positional))
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewUsageError("%q is not a valid worker count", raw)
	}
	if count < 0 {
		return 0, apperrors.CountError{Count: count}
	}
	return count, nil
}

// normalizeArgs inserts a "--" terminator before a negative integer in the
// count position so that "-1" reaches the count validation instead of being
// rejected as an unknown flag.
func normalizeArgs(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") || a == "-" {
			return args
		}
		if _, err := strconv.Atoi(a); err == nil {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			i++ // skip the flag's value
		}
	}
	return args
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] <count>\n\n", fs.Name())
	fmt.Fprintf(w, "Spawns <count> workers; worker i prints the integers [10*(i-1), 10*i).\n\n")
	fmt.Fprintf(w, "Flags:\n")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
}
