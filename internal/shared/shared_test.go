package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("NewLogger With Nil Writer", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected logger to be created")
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)
		child := WithLogger(logger, "component", "spotify")

		child.Info("scoped")
		if !strings.Contains(buf.String(), "component") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		if lvl := ParseLogLevel("debug"); lvl != log.DebugLevel {
			t.Errorf("expected debug level, got %v", lvl)
		}
		if lvl := ParseLogLevel("nonsense"); lvl != log.InfoLevel {
			t.Errorf("expected fallback to info level, got %v", lvl)
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		a := GenerateID()
		b := GenerateID()

		if a == "" || b == "" {
			t.Error("expected non-empty IDs")
		}
		if a == b {
			t.Error("expected unique IDs")
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data := map[string]string{"key": "value"}

		compact, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(string(compact), "\n") {
			t.Error("expected compact output without newlines")
		}

		pretty, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(string(pretty), "  \"key\"") {
			t.Errorf("expected indented output, got %s", pretty)
		}
	})
}
