package logger_i

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/akolanti/quizcrafter/internal/config"
)

func TestLogger_WarnCarriesSourceAndTrace(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	InitWithWriter(&buf, true, "debug")

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-1")
	NewLogger("parser").FromContext(ctx).Warn("duplicate option", "question", 2)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%s)", err, buf.String())
	}
	if entry["component"] != "parser" || entry["traceId"] != "trace-1" {
		t.Errorf("missing attrs: %v", entry)
	}
	source, ok := entry["source"].(map[string]any)
	if !ok || !strings.HasSuffix(source["file"].(string), "logger_test.go") {
		t.Errorf("source should point at the caller, got %v", entry["source"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	InitWithWriter(&buf, false, "error")
	NewLogger("test").Debug("hidden")
	NewLogger("test").Info("hidden too")

	if buf.Len() != 0 {
		t.Errorf("expected nothing below error level, got %q", buf.String())
	}
}
