package historybrowser

import (
	"net/url"
	"strconv"
)

// BuildQuery encodes the state as history query parameters. Empty filters
// are omitted; limit and offset are always sent.
func BuildQuery(s QueryState) url.Values {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	if s.From != "" {
		q.Set("from", s.From)
	}
	if s.To != "" {
		q.Set("to", s.To)
	}
	q.Set("limit", strconv.Itoa(s.Limit))
	q.Set("offset", strconv.Itoa(s.Offset))
	return q
}
