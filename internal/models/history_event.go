package models

// HistoryEvent is one recorded plate recognition at an access point.
type HistoryEvent struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"` // "YYYY-MM-DD HH:MM:SS", local gateway time
	Plate     string `json:"plate"`
	PointName string `json:"point_name"`
}

// HistoryPage is a limit/offset window over the filtered history plus the
// total number of matching rows.
type HistoryPage struct {
	Items  []HistoryEvent `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
