package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewSlogAdapter_WithNil(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil {
		t.Fatal("NewSlogAdapter returned nil")
	}
	if adapter.logger == nil {
		t.Error("adapter.logger should not be nil when created with nil")
	}
}

func TestNewSlogAdapter_WithLogger(t *testing.T) {
	logger := slog.Default()
	adapter := NewSlogAdapter(logger)
	if adapter.Logger() != logger {
		t.Error("Logger() should return the underlying logger")
	}
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(NewLogger(&buf, true))

	adapter.Debug("debug message", "key", "d")
	adapter.Info("info message", "key", "i")
	adapter.Warn("warn message", "key", "w")
	adapter.Error("error message", "key", "e")

	out := buf.String()
	for _, want := range []string{"debug message", "info message", "warn message", "error message"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(NewLogger(&buf, false)).With(KeyOperation, "env.reset")
	adapter.Info("reset")

	if !strings.Contains(buf.String(), "operation=env.reset") {
		t.Errorf("expected operation attribute in output, got %q", buf.String())
	}
}

func TestNewLogger_InfoHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, false)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record should be dropped at info level, got %q", buf.String())
	}
}

func TestDefaultLogger(t *testing.T) {
	adapter := DefaultLogger()
	if adapter == nil || adapter.logger == nil {
		t.Fatal("DefaultLogger should wrap a non-nil logger")
	}
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = (*SlogAdapter)(nil)
}
