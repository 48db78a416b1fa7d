package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTruncateHandlerCapsLongStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(slog.NewTextHandler(&buf, nil), 16))

	long := strings.Repeat("x", 1000)
	logger.Info("page fetched", "body", long)

	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("long value logged uncapped")
	}
	if !strings.Contains(out, strings.Repeat("x", 16)+"…") {
		t.Errorf("output missing capped value: %s", out)
	}
}

func TestTruncateHandlerLeavesShortStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(slog.NewTextHandler(&buf, nil), 64))

	logger.Info("scan", "url", "http://fake-test.xyz")
	if !strings.Contains(buf.String(), "http://fake-test.xyz") {
		t.Errorf("short value altered: %s", buf.String())
	}
}

func TestTruncateHandlerRuneBoundary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(slog.NewTextHandler(&buf, nil), 5))

	// "日" is three bytes; a five byte cap lands mid-rune.
	logger.Info("ocr", "text", "日本語テキスト")
	if strings.Contains(buf.String(), "�") {
		t.Errorf("cut produced an invalid rune: %s", buf.String())
	}
}

func TestTruncateHandlerGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(slog.NewTextHandler(&buf, nil), 8))

	logger.Info("report",
		slog.Group("page",
			slog.String("body", strings.Repeat("y", 100)),
			slog.String("url", "short"),
		),
	)
	out := buf.String()
	if strings.Contains(out, strings.Repeat("y", 100)) {
		t.Error("grouped long value logged uncapped")
	}
	if !strings.Contains(out, "short") {
		t.Errorf("grouped short value missing: %s", out)
	}
}

func TestTruncateHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewTruncateHandler(slog.NewTextHandler(&buf, nil), 8)).
		With("html", strings.Repeat("z", 100))

	logger.Info("attached")
	if strings.Contains(buf.String(), strings.Repeat("z", 100)) {
		t.Error("WithAttrs value logged uncapped")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	quiet := NewLogger(&buf, false)
	quiet.Debug("invisible")
	quiet.Info("also invisible")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger emitted below Warn: %s", buf.String())
	}

	quiet.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("Warn suppressed on non-verbose logger")
	}

	buf.Reset()
	verbose := NewLogger(&buf, true)
	verbose.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("Debug suppressed on verbose logger")
	}
}
