package sim

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/sparks/internal/logging"
)

func TestProgressLogsPerInterval(t *testing.T) {
	var buf bytes.Buffer
	s := New(nil)
	s.AddObserver(NewProgress(logging.NewWithLevel(&buf, slog.LevelInfo), 0.25))

	if _, err := s.Run(context.Background(), &dropScenario{}, testConfig()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := strings.Count(buf.String(), "msg=progress"); got != 4 {
		t.Errorf("expected 4 progress lines over 1s, got %d:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "particles=1") {
		t.Errorf("progress should report the particle count:\n%s", buf.String())
	}
}

func TestProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := New(nil)
	s.AddObserver(NewProgress(logging.NewWithLevel(&buf, slog.LevelInfo), 0))

	if _, err := s.Run(context.Background(), &dropScenario{}, testConfig()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("zero interval should log nothing, got %q", buf.String())
	}
}
