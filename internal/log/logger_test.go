package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Handler: slog.NewTextHandler(&buf, nil), Component: ComponentLedger})

	l.Info("budget updated", FieldCategory, "Food")
	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "category=Food") {
		t.Fatalf("unexpected output: %s", out)
	}

	buf.Reset()
	l.WithComponent(ComponentStorage).Warn("save failed")
	if out := buf.String(); strings.Count(out, "component=") != 1 || !strings.Contains(out, "component=storage") {
		t.Fatalf("expected a single storage component field, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromContextFallback(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("expected default logger with unknown component")
	}
	want := Discard()
	if got := FromContext(NewContext(context.Background(), want)); got != want {
		t.Fatalf("expected logger from context")
	}
}
