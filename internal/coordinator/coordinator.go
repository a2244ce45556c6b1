package coordinator

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/rangeprint/internal/errors"
	"github.com/agbru/rangeprint/internal/logging"
)

// TracerName is the instrumentation name used for coordinator spans.
const TracerName = "github.com/agbru/rangeprint/internal/coordinator"

// Coordinator owns one run: the descriptors, the shared lock and the unit
// handles all live in the frame of Run.
type Coordinator struct {
	out        io.Writer
	spawner    Spawner
	observer   Observer
	logger     logging.Logger
	tracer     trace.Tracer
	maxWorkers int
}

// Option configures a Coordinator during construction.
type Option func(*Coordinator)

// WithSpawner sets the runtime used to start units.
func WithSpawner(s Spawner) Option {
	return func(c *Coordinator) { c.spawner = s }
}

// WithObserver sets the receiver of lifecycle events.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithTracerProvider sets the provider of the coordinator's tracer.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Coordinator) { c.tracer = tp.Tracer(TracerName) }
}

// WithMaxWorkers bounds the number of descriptors Run will allocate.
// Zero or less means no bound.
func WithMaxWorkers(n int) Option {
	return func(c *Coordinator) { c.maxWorkers = n }
}

// New returns a Coordinator whose workers print to out.
//
// Defaults: an unlimited GoroutineSpawner, NullObserver, a no-op logger and
// the global OpenTelemetry tracer provider.
func New(out io.Writer, opts ...Option) *Coordinator {
	c := &Coordinator{out: out}
	for _, opt := range opts {
		opt(c)
	}
	if c.spawner == nil {
		c.spawner = NewGoroutineSpawner(0)
	}
	if c.observer == nil {
		c.observer = NullObserver{}
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(TracerName)
	}
	return c
}

// Run spawns count workers and waits for all of them.
//
// Failures are returned, not reported: they are logged at debug level only,
// the caller prints the one diagnostic line.
//
// Units are spawned for ordinals 1..count and then joined in the same order.
// The first spawn failure returns a SpawnError at once, without joining the
// units already started; the first join failure returns a JoinError and
// leaves the remaining units unjoined. A count above the configured maximum
// returns a ResourceError before anything is spawned.
func (c *Coordinator) Run(ctx context.Context, count int) (err error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.Run",
		trace.WithAttributes(attribute.Int("workers.count", count)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	descriptors, err := NewDescriptors(count, c.maxWorkers)
	if err != nil {
		c.logger.Debug("descriptor allocation failed", logging.Err(err), logging.Int("count", count))
		return err
	}

	console := NewConsole(c.out, c.observer)
	handles := make([]Handle, len(descriptors))

	for i, d := range descriptors {
		w := Worker{Descriptor: d, Console: console, tracer: c.tracer}
		h, err := c.spawner.Spawn(ctx, d.Ordinal, w.Run)
		if err != nil {
			c.observer.SpawnFailed(d.Ordinal)
			c.logger.Debug("spawn failed", logging.Err(err), logging.Int("ordinal", d.Ordinal))
			return apperrors.SpawnError{Ordinal: d.Ordinal, Cause: err}
		}
		handles[i] = h
		c.observer.WorkerSpawned(d.Ordinal)
		c.logger.Debug("worker spawned", logging.Int("ordinal", d.Ordinal))
	}
	span.AddEvent("workers spawned")

	for i, h := range handles {
		ordinal := descriptors[i].Ordinal
		err := h.Join()
		c.observer.WorkerJoined(ordinal, err)
		if err != nil {
			c.logger.Debug("join failed", logging.Err(err), logging.Int("ordinal", ordinal))
			return apperrors.JoinError{Ordinal: ordinal, Cause: err}
		}
		c.logger.Debug("worker joined", logging.Int("ordinal", ordinal))
	}
	span.AddEvent("workers joined")

	return nil
}
