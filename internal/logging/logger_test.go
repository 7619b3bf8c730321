package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newPrettyHandler(buf, levelVar)), buf
}

func TestPrettyHandlerFormatsComponentAndAttrs(t *testing.T) {
	logger, buf := newBufferLogger(t, "info")
	logger = NewComponentLogger(logger, "scheduler")

	logger.Info("cycle complete", String(FieldFile, "a.jpg"), Int("remaining", 2))

	line := buf.String()
	if !strings.Contains(line, " INFO scheduler: cycle complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "file=a.jpg") {
		t.Fatalf("missing file attr: %q", line)
	}
	if !strings.Contains(line, "remaining=2") {
		t.Fatalf("missing remaining attr: %q", line)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	logger, buf := newBufferLogger(t, "info")
	logger.Error("upload failed", Error(errors.New("bad gateway")))

	if !strings.Contains(buf.String(), `error="bad gateway"`) {
		t.Fatalf("expected quoted error, got %q", buf.String())
	}
}

func TestPrettyHandlerHonorsLevel(t *testing.T) {
	logger, buf := newBufferLogger(t, "warn")
	logger.Info("not visible")
	if buf.Len() != 0 {
		t.Fatalf("expected info suppressed at warn level, got %q", buf.String())
	}
	logger.Warn("visible")
	if !strings.Contains(buf.String(), "WARN") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNoopHandlerDropsEverything(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should not be enabled")
	}
	logger.Error("ignored")
}
