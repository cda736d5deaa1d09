package service

import (
	"fmt"

	"alpr_gateway/internal/logger"
)

const logTimeLayout = "2006-01-02 15:04:05"

type LogService struct {
	buf *logger.Buffer
}

func NewLogService(buf *logger.Buffer) *LogService {
	return &LogService{buf: buf}
}

// Lines renders the in-memory log tail oldest first as
// "2006-01-02 15:04:05 [LEVEL] message".
func (s *LogService) Lines(showDebug bool) []string {
	entries := s.buf.Lines(showDebug)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s [%s] %s", e.Time.Format(logTimeLayout), e.Level, e.Message))
	}
	return out
}
