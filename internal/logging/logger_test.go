package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewReadsEnv(t *testing.T) {
	t.Setenv(LevelEnv, "WARN")

	var buf bytes.Buffer
	log := New(&buf)
	log.Info("hidden")
	log.Warn("shown", "scenario", "fountain")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message logged at WARN level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "scenario=fountain") {
		t.Errorf("expected structured warn line, got %q", out)
	}
}
