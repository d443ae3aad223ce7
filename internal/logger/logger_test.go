package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", ServiceName: "fortuna", Version: "test", Environment: "test"}, &buf)

	slog.Info("hello", "key", "value")

	var entry map[string]interface{}
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}

	if entry["service"] != "fortuna" {
		t.Errorf("expected service attribute 'fortuna', got %v", entry["service"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected key=value attribute, got %v", entry["key"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "text"}, &buf)

	slog.Debug("suppressed")
	slog.Info("suppressed too")
	slog.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("expected debug/info lines to be filtered, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected warn line to appear, got %q", out)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestIDFromContext(ctx); ok {
		t.Error("expected no request ID on fresh context")
	}

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	if !ok {
		t.Fatal("expected request ID to be present")
	}
	if got != id {
		t.Errorf("expected request ID %s, got %s", id, got)
	}
}

func TestConfigLevels(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for level, want := range cases {
		cfg := Config{Level: level}
		if got := cfg.LogLevel(); got != want {
			t.Errorf("level %q: expected %v, got %v", level, want, got)
		}
	}
}
