package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	testErr := errors.New("write failed")
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("category", "spawn"), "category", "spawn"},
		{"Int", Int("ordinal", 3), "ordinal", 3},
		{"Uint64", Uint64("bytes", 1<<40), "bytes", uint64(1 << 40)},
		{"Float64", Float64("wait", 0.25), "wait", 0.25},
		{"Duration", Duration("elapsed", time.Second), "elapsed", time.Second},
		{"Err", Err(testErr), "error", testErr},
		{"Err with nil", Err(nil), "error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}
}

// TestNewZerologAdapter tests the ZerologAdapter constructor.
func TestNewZerologAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewZerologAdapter(zerolog.New(&buf))

	adapter.Info("coordinator ready")
	if !strings.Contains(buf.String(), "coordinator ready") {
		t.Errorf("NewZerologAdapter logger not working, output: %s", buf.String())
	}
}

func newTestLogger(buf *bytes.Buffer) Logger {
	return NewZerologAdapter(zerolog.New(buf).Level(zerolog.InfoLevel).With().Str("component", "test").Logger())
}

// TestNew tests building a logger from level and format strings.
func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantErr   bool
		logDebug  bool
		wantInOut string
	}{
		{name: "json debug", level: "debug", format: FormatJSON, logDebug: true, wantInOut: `"ordinal":2`},
		{name: "console debug", level: "DEBUG", format: FormatConsole, logDebug: true, wantInOut: "ordinal=2"},
		{name: "text debug", level: "debug", format: FormatText, logDebug: true, wantInOut: "[DEBUG] spawned ordinal=2"},
		{name: "warn hides debug", level: "warn", format: FormatJSON, logDebug: false},
		{name: "text warn hides debug", level: "warn", format: FormatText, logDebug: false},
		{name: "empty level defaults to warn", level: "", format: FormatJSON, logDebug: false},
		{name: "bad level", level: "loud", format: FormatJSON, wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, "test", tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			logger.Debug("spawned", Int("ordinal", 2))
			if !tt.logDebug {
				if buf.Len() != 0 {
					t.Errorf("debug entry should be filtered, got: %s", buf.String())
				}
				return
			}
			if !strings.Contains(buf.String(), tt.wantInOut) {
				t.Errorf("output should contain %q, got: %s", tt.wantInOut, buf.String())
			}
		})
	}
}

// TestZerologAdapter_Levels tests the leveled methods.
func TestZerologAdapter_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "info with fields",
			log:      func(l Logger) { l.Info("joined", Int("ordinal", 4), String("unit", "goroutine")) },
			contains: []string{"joined", "info", "4", "goroutine"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("slow lock", Float64("wait", 1.5)) },
			contains: []string{"slow lock", "warn", "1.5"},
		},
		{
			name:     "error with error",
			log:      func(l Logger) { l.Error("join failed", errors.New("worker panicked")) },
			contains: []string{"join failed", "worker panicked", "error"},
		},
		{
			name:     "error with nil error",
			log:      func(l Logger) { l.Error("warning", nil) },
			contains: []string{"warning", "error"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("spawned %d of %d", 3, 5) },
			contains: []string{"spawned 3 of 5"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("lock", "released") },
			contains: []string{"lock released"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newTestLogger(&buf))

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestZerologAdapter_Debug tests that Debug honors the logger level.
func TestZerologAdapter_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapter(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("lock acquired", Int("ordinal", 1))

	output := buf.String()
	if !strings.Contains(output, "lock acquired") || !strings.Contains(output, "debug") {
		t.Errorf("Debug output should contain message and level, got: %s", output)
	}
}

// TestZerologAdapter_applyFields tests field application with all supported types.
func TestZerologAdapter_applyFields(t *testing.T) {
	tests := []struct {
		name     string
		field    Field
		contains string
	}{
		{"string field", Field{Key: "str", Value: "hello"}, "hello"},
		{"int field", Field{Key: "num", Value: 42}, "42"},
		{"int64 field", Field{Key: "big", Value: int64(9223372036854775807)}, "9223372036854775807"},
		{"uint64 field", Field{Key: "huge", Value: uint64(18446744073709551615)}, "18446744073709551615"},
		{"float64 field", Field{Key: "pi", Value: 3.14}, "3.14"},
		{"error field", Field{Key: "err", Value: errors.New("oops")}, "oops"},
		{"bool field", Field{Key: "flag", Value: true}, "true"},
		{"interface field", Field{Key: "data", Value: struct{ X int }{X: 1}}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newTestLogger(&buf).Info("test", tt.field)

			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("applyFields should handle %s, output: %s", tt.name, buf.String())
			}
		})
	}
}

// TestStdLoggerAdapter tests the standard library backed adapter.
func TestStdLoggerAdapter(t *testing.T) {
	tests := []struct {
		name     string
		log      func(Logger)
		contains []string
	}{
		{
			name:     "debug",
			log:      func(l Logger) { l.Debug("trace", Int("line", 42)) },
			contains: []string{"[DEBUG]", "trace", "line=42"},
		},
		{
			name:     "info",
			log:      func(l Logger) { l.Info("spawned", Int("ordinal", 1)) },
			contains: []string{"[INFO]", "spawned", "ordinal=1"},
		},
		{
			name:     "warn",
			log:      func(l Logger) { l.Warn("limit near") },
			contains: []string{"[WARN]", "limit near"},
		},
		{
			name:     "error",
			log:      func(l Logger) { l.Error("join failed", errors.New("boom"), Int("ordinal", 9)) },
			contains: []string{"[ERROR]", "join failed: boom", "ordinal=9"},
		},
		{
			name:     "printf",
			log:      func(l Logger) { l.Printf("value is %d", 123) },
			contains: []string{"value is 123"},
		},
		{
			name:     "println",
			log:      func(l Logger) { l.Println("a", "b", "c") },
			contains: []string{"a b c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewStdLoggerAdapter(log.New(&buf, "", 0)))

			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}

// TestNew_TextFormat tests that the text format prefixes the component and
// filters by level.
func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "rangeprint", "info", FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := logger.(*StdLoggerAdapter); !ok {
		t.Fatalf("text format should use the std adapter, got %T", logger)
	}

	logger.Debug("hidden")
	logger.Info("run complete", Int("workers", 3))

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("debug entry should be filtered at info level, got: %s", output)
	}
	if !strings.HasPrefix(output, "rangeprint: ") {
		t.Errorf("output should start with the component prefix, got: %s", output)
	}
	if !strings.Contains(output, "[INFO] run complete workers=3") {
		t.Errorf("unexpected text entry: %s", output)
	}
	if n := strings.Count(output, "\n"); n != 1 {
		t.Errorf("got %d lines, want 1", n)
	}
}

// TestStdLoggerAdapter_Disabled tests that a disabled level drops everything.
func TestStdLoggerAdapter_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "test", "disabled", FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Error("join failed", errors.New("boom"))
	logger.Println("lock", "released")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

// TestLoggerInterface verifies the adapters implement the Logger interface.
func TestLoggerInterface(t *testing.T) {
	var buf bytes.Buffer
	var _ Logger = newTestLogger(&buf)
	var _ Logger = NewStdLoggerAdapter(log.New(&buf, "", 0))
	var _ Logger = Nop()
}
