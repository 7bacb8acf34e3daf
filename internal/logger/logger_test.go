package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInitDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Debug: true, Output: &buf})
	defer Init(Options{})

	Debug("debug message", "key", "value")
	if !strings.Contains(buf.String(), "debug message") {
		t.Errorf("debug message not logged: %q", buf.String())
	}
}

func TestInitDefaultSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})
	defer Init(Options{})

	Debug("hidden")
	Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug logged at info level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("info message not logged: %q", out)
	}
}

func TestInitQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Quiet: true, Output: &buf})
	defer Init(Options{})

	Info("hidden")
	Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged in quiet mode: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("error message not logged: %q", out)
	}
}

func TestInitJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{JSON: true, Output: &buf})
	defer Init(Options{})

	Info("structured", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"structured"`) {
		t.Errorf("not JSON output: %q", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)
	defer Init(Options{})

	Info("via custom")
	if !strings.Contains(buf.String(), "via custom") {
		t.Errorf("custom logger not used: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})
	defer Init(Options{})

	With("component", "test").Info("scoped")
	out := buf.String()
	if !strings.Contains(out, "component=test") {
		t.Errorf("attribute missing: %q", out)
	}
}
