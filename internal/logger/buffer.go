package logger

import (
	"strings"
	"sync"

	"alpr_gateway/internal/models"

	"go.uber.org/zap/zapcore"
)

// Buffer is a thread-safe ring of the most recent log lines.
type Buffer struct {
	mu      sync.RWMutex
	entries []models.LogLine
	next    int
	full    bool
}

// NewBuffer creates a buffer holding at most capacity lines.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffer{entries: make([]models.LogLine, capacity)}
}

// Add appends a line, overwriting the oldest once full.
func (b *Buffer) Add(line models.LogLine) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[b.next] = line
	b.next = (b.next + 1) % len(b.entries)
	if b.next == 0 {
		b.full = true
	}
}

// Lines returns the buffered lines oldest first. Debug lines are skipped
// unless includeDebug is set.
func (b *Buffer) Lines(includeDebug bool) []models.LogLine {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ordered []models.LogLine
	if b.full {
		ordered = append(ordered, b.entries[b.next:]...)
	}
	ordered = append(ordered, b.entries[:b.next]...)

	out := make([]models.LogLine, 0, len(ordered))
	for _, l := range ordered {
		if !includeDebug && l.Level == zapcore.DebugLevel.CapitalString() {
			continue
		}
		out = append(out, l)
	}
	return out
}

// bufferCore is a zapcore.Core that renders entries into the Buffer.
type bufferCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	buf *Buffer
}

func newBufferCore(buf *Buffer, level zapcore.LevelEnabler) zapcore.Core {
	cfg := encoderConfig()
	cfg.TimeKey = ""
	cfg.LevelKey = ""
	cfg.CallerKey = ""
	return &bufferCore{
		LevelEnabler: level,
		enc:          zapcore.NewConsoleEncoder(cfg),
		buf:          buf,
	}
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &bufferCore{LevelEnabler: c.LevelEnabler, enc: c.enc.Clone(), buf: c.buf}
	for i := range fields {
		fields[i].AddTo(clone.enc)
	}
	return clone
}

func (c *bufferCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *bufferCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	out, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	msg := strings.TrimSpace(out.String())
	out.Free()

	c.buf.Add(models.LogLine{
		Time:    ent.Time,
		Level:   ent.Level.CapitalString(),
		Message: msg,
	})
	return nil
}

func (c *bufferCore) Sync() error { return nil }
