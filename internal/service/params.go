package service

import (
	"time"

	"alpr_gateway/internal/models"
)

// HistoryQuery is the raw history filter as received from the dashboard.
type HistoryQuery struct {
	Search string
	From   string // "YYYY-MM-DD", "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DDTHH:MM" or RFC 3339
	To     string
	Limit  int
	Offset int
}

// RecordParams is one detection reported by the recognition engine.
type RecordParams struct {
	Plate     string
	Point     string
	Direction string    // "IN", "OUT" or empty
	At        time.Time // zero means now
}

// RecordResult tells whether a detection was stored or suppressed as a repeat.
type RecordResult struct {
	Event   models.HistoryEvent
	Skipped bool
}

// DedupeParams selects the rows a manual dedupe run looks at.
type DedupeParams struct {
	Point string // empty means every point
	Since time.Time
	Until time.Time
}
