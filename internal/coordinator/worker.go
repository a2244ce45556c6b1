package coordinator

import (
	"context"
	"io"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/rangeprint/internal/errors"
)

// Worker prints the range of one descriptor under the shared lock.
type Worker struct {
	Descriptor Descriptor
	Console    *Console
	tracer     trace.Tracer
}

// Run acquires the lock, prints the worker's range as space-separated
// integers followed by a newline, and releases the lock.
func (w Worker) Run(ctx context.Context) (err error) {
	if w.tracer != nil {
		_, span := w.tracer.Start(ctx, "worker.Run",
			trace.WithAttributes(attribute.Int("worker.ordinal", w.Descriptor.Ordinal)))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
		}()
	}
	return w.print()
}

func (w Worker) print() error {
	r := w.Descriptor.Range()
	err := w.Console.Locked(func(out io.Writer) error {
		return writeRange(out, r)
	})
	return apperrors.WrapError(err, "worker %d", w.Descriptor.Ordinal)
}

// writeRange writes one integer per Write call so that the lock, not the
// writer, is what keeps lines whole.
func writeRange(out io.Writer, r Range) error {
	buf := make([]byte, 0, 24)
	for n := r.Lower; n < r.Upper; n++ {
		buf = buf[:0]
		if n > r.Lower {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(n), 10)
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// FormatRange returns the line a worker prints for r, without the newline.
func FormatRange(r Range) string {
	buf := make([]byte, 0, r.Len()*4)
	for n := r.Lower; n < r.Upper; n++ {
		if n > r.Lower {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(n), 10)
	}
	return string(buf)
}
