package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestHandler(buf *bytes.Buffer, format logFormat) (*structuredHandler, *asyncWriter) {
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	return newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	}), aw
}

func closeWriter(t *testing.T, aw *asyncWriter) {
	t.Helper()
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	log := slog.New(handler).With("component", "swap")
	LogEvent(ctx, log, slog.LevelInfo, "swap.step",
		slog.String("status", "ok"),
		slog.String("state", "enter_amount"),
	)
	closeWriter(t, aw)

	line := strings.TrimSpace(buf.String())
	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=swap", "event=swap.step", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "state=enter_amount"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatJSON)
	ctx := WithRID(context.Background(), "12:34:56")

	log := slog.New(handler).With("component", "prices")
	LogEvent(ctx, log, slog.LevelError, "prices.fetch",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
		slog.Duration("duration", 1500*time.Microsecond),
	)
	closeWriter(t, aw)

	line := strings.TrimSpace(buf.String())
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"prices"`, `"event":"prices.fetch"`, `"status":"fail"`, `"rid":"` + CompactRID("12:34:56") + `"`, `"rid_full":"12:34:56"`, `"duration_ms":2`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerDropsUnknownOutcomeAndEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)
	slog.New(handler).LogAttrs(context.Background(), slog.LevelInfo, "fallback.event",
		slog.String("outcome", "weird"),
		slog.String("payload", "  "),
	)
	closeWriter(t, aw)

	line := buf.String()
	if strings.Contains(line, "outcome=") || strings.Contains(line, "payload=") {
		t.Fatalf("expected outcome and empty payload to be dropped, got %s", line)
	}
	if !strings.Contains(line, "event=fallback.event") || !strings.Contains(line, "component=app") {
		t.Fatalf("expected message fallback and default component, got %s", line)
	}
}

func TestStructuredHandlerLevelFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, aw := newTestHandler(buf, formatKV)
	slog.New(handler).Debug("hidden")
	closeWriter(t, aw)
	if buf.Len() != 0 {
		t.Fatalf("debug line should be filtered, got %q", buf.String())
	}
}

func TestCompactRID(t *testing.T) {
	if got := CompactRID("36:72:35"); got != "10.20.z" {
		t.Fatalf("CompactRID = %s", got)
	}
	if got := CompactRID("not-a-rid"); got != "not-a-rid" {
		t.Fatalf("CompactRID should keep foreign ids, got %s", got)
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("ab\x00c\u200bdef", 4); got != "abcd" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	var allowed int
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("allowed = %d, want 3", allowed)
	}
}

func TestParseSampleRatio(t *testing.T) {
	cases := []struct {
		in       string
		num, den int
	}{
		{"", 1, 50},
		{"25", 1, 25},
		{"3/10", 3, 10},
		{"off", 0, 0},
		{"0/0", 0, 0},
		{"junk", 1, 50},
		{"-2/5", 1, 50},
	}
	for _, c := range cases {
		if num, den := parseSampleRatio(c.in); num != c.num || den != c.den {
			t.Fatalf("parseSampleRatio(%q) = %d/%d, want %d/%d", c.in, num, den, c.num, c.den)
		}
	}
}

func TestRatioSamplerDisabled(t *testing.T) {
	s := newRatioSampler(0, 0)
	for i := 0; i < 5; i++ {
		if !s.Allow() {
			t.Fatalf("disabled sampler should allow every event")
		}
	}
}
