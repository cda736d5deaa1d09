// Package historybrowser drives a paginated, filterable view over the
// gateway's recognition history.
package historybrowser

const (
	// DefaultLimit is the page size used when none is configured.
	DefaultLimit = 50

	// MaxLimit is the largest page the gateway returns (history.max_limit).
	// A larger page size would make NextPage skip the rows the gateway
	// cut off.
	MaxLimit = 200
)

// QueryState is the filter and paging state of one browser.
type QueryState struct {
	Search string
	From   string
	To     string
	Limit  int
	Offset int
	Total  int
}

// NewQueryState returns an unfiltered first page of DefaultLimit rows.
func NewQueryState() QueryState {
	return QueryState{Limit: DefaultLimit}
}

// HistoryRow is one detection as returned by GET /api/history.
type HistoryRow struct {
	Timestamp string `json:"timestamp"`
	Plate     string `json:"plate"`
	PointName string `json:"point_name"`
}

// HistoryResponse is the decoded body of GET /api/history.
type HistoryResponse struct {
	Items []HistoryRow `json:"items"`
	Total int          `json:"total"`
}
