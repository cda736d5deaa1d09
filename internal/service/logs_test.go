package service

import (
	"strings"
	"testing"

	"alpr_gateway/internal/logger"
)

func TestLogService_HidesDebugUnlessAsked(t *testing.T) {
	t.Parallel()
	log := logger.New(logger.Options{Level: logger.DebugLevel, BufferLines: 10})
	log.Debugw("probe details")
	log.Infow("plate_recorded", "plate", "А123ВС77")

	svc := NewLogService(log.Buffer())

	lines := svc.Lines(false)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line without debug, got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[INFO] plate_recorded") || !strings.Contains(lines[0], "А123ВС77") {
		t.Fatalf("unexpected line %q", lines[0])
	}

	all := svc.Lines(true)
	if len(all) != 2 || !strings.Contains(all[0], "[DEBUG] probe details") {
		t.Fatalf("unexpected lines with debug %v", all)
	}
}
