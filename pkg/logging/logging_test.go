package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		New(Options{JSON: true, Writer: &buf}).Info("Favorite toggled", "event_id", "e1")

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
		}
		if rec["msg"] != "Favorite toggled" || rec["event_id"] != "e1" {
			t.Errorf("unexpected record: %v", rec)
		}
	})

	t.Run("text respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Level: slog.LevelWarn, Writer: &buf, NoColor: true})
		logger.Info("hidden")
		logger.Warn("shown", "kind", "transient_network")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("info record should be filtered: %q", out)
		}
		if !strings.Contains(out, "shown") || !strings.Contains(out, "kind=transient_network") {
			t.Errorf("expected the warn record, got %q", out)
		}
	})
}
