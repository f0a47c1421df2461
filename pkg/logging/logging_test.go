package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom, err := New("debug", "text", &buf)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	SetLogger(custom)

	Logger().Debug("resolved", "source", "plane")
	if !strings.Contains(buf.String(), "source=plane") {
		t.Errorf("expected log output to contain source=plane, got: %s", buf.String())
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	l.Info("dropped")
	l.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, `"msg":"kept"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestNewRejectsUnknownValues(t *testing.T) {
	if _, err := New("loud", "text", &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown level")
	}
	if _, err := New("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
