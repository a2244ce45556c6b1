package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/rangeprint/internal/config"
	"github.com/agbru/rangeprint/internal/coordinator"
	apperrors "github.com/agbru/rangeprint/internal/errors"
	"github.com/agbru/rangeprint/internal/logging"
	"github.com/agbru/rangeprint/internal/metrics"
	"github.com/agbru/rangeprint/internal/ui"
)

// Application represents the rangeprint application instance.
type Application struct {
	Config         config.AppConfig
	Spawner        coordinator.Spawner
	TracerProvider trace.TracerProvider
	ErrWriter      io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSpawner replaces the goroutine spawner built from the configuration.
func WithSpawner(s coordinator.Spawner) AppOption {
	return func(a *Application) { a.Spawner = s }
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for the run.
func WithTracerProvider(tp trace.TracerProvider) AppOption {
	return func(a *Application) { a.TracerProvider = tp }
}

// New creates a new Application instance by parsing command-line arguments.
// Configuration errors are reported on errWriter before being returned; help
// and version requests are returned unreported.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.TracerProvider == nil {
		app.TracerProvider = otel.GetTracerProvider()
	}

	programName := "rangeprint"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		if !IsHelpError(err) && !IsVersionError(err) {
			ui.NewDiagnostics(errWriter).Report(err)
		}
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes one coordinator run and returns the process exit code.
// Worker output goes to out; diagnostics and logs go to the error writer.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	diagnostics := ui.NewDiagnostics(a.ErrWriter)

	logger, err := logging.New(a.ErrWriter, "rangeprint", a.Config.LogLevel, a.Config.LogFormat)
	if err != nil {
		err = apperrors.UsageError{Message: err.Error()}
		diagnostics.Report(err)
		return apperrors.ExitCode(err)
	}

	recorder := metrics.NewRecorder()
	spawner := a.Spawner
	if spawner == nil {
		spawner = coordinator.NewGoroutineSpawner(a.Config.MaxUnits)
	}

	c := coordinator.New(out,
		coordinator.WithSpawner(spawner),
		coordinator.WithObserver(recorder),
		coordinator.WithLogger(logger),
		coordinator.WithTracerProvider(a.TracerProvider),
		coordinator.WithMaxWorkers(a.Config.MaxWorkers),
	)

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	logger.Debug("starting run",
		logging.Int("count", a.Config.Count),
		logging.Int("max_units", a.Config.MaxUnits),
		logging.Uint64("heap_alloc", before.HeapAlloc))

	start := time.Now()
	err = c.Run(ctx, a.Config.Count)
	elapsed := time.Since(start)

	a.writeMetrics(recorder, logger)

	if err != nil {
		diagnostics.Report(err)
		return apperrors.ExitCode(err)
	}

	after := mem.Snapshot()
	logger.Info("run complete",
		logging.Int("workers", a.Config.Count),
		logging.Duration("elapsed", elapsed),
		logging.Uint64("heap_alloc", after.HeapAlloc))
	return apperrors.ExitSuccess
}

// writeMetrics exports the run's metrics when a metrics file is configured.
// A failure to write them is logged and does not change the exit code.
func (a *Application) writeMetrics(recorder *metrics.Recorder, logger logging.Logger) {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		logger.Warn("could not write metrics file",
			logging.String("path", a.Config.MetricsFile), logging.Err(err))
	}
}

// IsVersionError reports whether the command line asked for the version
// banner instead of a run.
func IsVersionError(err error) bool {
	return errors.Is(err, config.ErrVersion)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
