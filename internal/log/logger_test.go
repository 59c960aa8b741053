package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"info":  slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %v err=%v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentLedger, Output: &buf})
	l.Info("hello", FieldCount, 3)
	l.WithComponent(ComponentStorage).Debug("written")

	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "count=3") {
		t.Fatalf("missing fields in %q", out)
	}
	if !strings.Contains(out, "component=storage") {
		t.Fatalf("component override missing in %q", out)
	}
}

func TestNewContextCarriesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Component: ComponentHTTP, Output: &buf}).With(FieldRequestID, "req_42")

	ctx := NewContext(context.Background(), base)
	FromContext(ctx).InfoContext(ctx, "inside")

	if !strings.Contains(buf.String(), "request_id=req_42") || !strings.Contains(buf.String(), "component=http") {
		t.Fatalf("context logger lost its fields: %q", buf.String())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	l := FromContext(context.Background())
	if l == nil || l.component != "unknown" {
		t.Fatalf("unexpected fallback logger: %+v", l)
	}
}

func TestStructuredLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Component: ComponentHTTP, Output: &buf}))
	r := httptest.NewRequest(http.MethodDelete, "/api/transactions/1", nil)

	sl.LogHTTPEnd(context.Background(), r, http.StatusInternalServerError, 3, "127.0.0.1")
	sl.LogError(context.Background(), "save failed", errors.New("disk full"), OpCreate, nil)

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "status_code=500") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, `error="disk full"`) || !strings.Contains(out, "operation=create") {
		t.Fatalf("unexpected error output %q", out)
	}
}
