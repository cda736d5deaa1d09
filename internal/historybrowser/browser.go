package historybrowser

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"alpr_gateway/internal/logger"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Load when a newer load was issued while this
// one was in flight. Its result is dropped.
var ErrSuperseded = errors.New("history load superseded")

// View receives the outcome of a successful load.
type View interface {
	RenderRows(rows []HistoryRow)
	SetSummary(summary string)
	SetPagination(p Pagination)
}

// Source fetches one page of history.
type Source interface {
	FetchHistory(ctx context.Context, q url.Values) (HistoryResponse, error)
}

// Option configures a Browser.
type Option func(*Browser)

// WithLimit sets the page size, capped at MaxLimit. Non-positive values are
// ignored.
func WithLimit(limit int) Option {
	return func(b *Browser) {
		if limit > 0 {
			b.state.Limit = ClampLimit(limit)
		}
	}
}

// ClampLimit caps a page size at MaxLimit.
func ClampLimit(limit int) int {
	return min(limit, MaxLimit)
}

// Browser owns the query state and pushes every successful page into its
// View. Failed loads leave the view untouched.
type Browser struct {
	src  Source
	view View
	log  *logger.Logger

	mu         sync.Mutex
	state      QueryState
	gen        uint64
	pagination Pagination
}

// New creates a browser on the first page. A nil log discards diagnostics.
func New(src Source, view View, log *logger.Logger, opts ...Option) *Browser {
	if log == nil {
		log = logger.FromZap(zap.NewNop())
	}
	b := &Browser{
		src:   src,
		view:  view,
		log:   log,
		state: NewQueryState(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns a copy of the current query state.
func (b *Browser) State() QueryState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Pagination returns the enablement computed by the last successful load.
func (b *Browser) Pagination() Pagination {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pagination
}

// Load fetches the page described by the current state and renders it.
// A transport failure is logged once and returned; the view keeps its
// previous content.
func (b *Browser) Load(ctx context.Context) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	q := BuildQuery(b.state)
	b.mu.Unlock()

	resp, err := b.src.FetchHistory(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen != b.gen {
		return ErrSuperseded
	}
	if err != nil {
		b.log.Errorw("history_load_failed", "query", q.Encode(), "err", err)
		return err
	}

	rows := resp.Items
	if rows == nil {
		rows = []HistoryRow{}
	}
	b.state.Total = resp.Total
	b.pagination = PaginationFor(b.state.Offset, b.state.Limit, b.state.Total)

	b.view.RenderRows(rows)
	b.view.SetSummary(Summary(b.state.Offset, len(rows), b.state.Total))
	b.view.SetPagination(b.pagination)
	return nil
}

// ApplyFilters replaces the filters and reloads from the first page.
func (b *Browser) ApplyFilters(ctx context.Context, search, from, to string) error {
	b.mu.Lock()
	b.state.Search = search
	b.state.From = from
	b.state.To = to
	b.state.Offset = 0
	b.mu.Unlock()
	return b.Load(ctx)
}

// ResetFilters clears the filters and reloads from the first page.
func (b *Browser) ResetFilters(ctx context.Context) error {
	return b.ApplyFilters(ctx, "", "", "")
}

// PrevPage moves back one page, stopping at offset 0.
func (b *Browser) PrevPage(ctx context.Context) error {
	b.mu.Lock()
	b.state.Offset = max(0, b.state.Offset-b.state.Limit)
	b.mu.Unlock()
	return b.Load(ctx)
}

// NextPage moves forward one page. The upper bound is left to the caller,
// which should only offer it while Pagination().Next holds.
func (b *Browser) NextPage(ctx context.Context) error {
	b.mu.Lock()
	b.state.Offset += b.state.Limit
	b.mu.Unlock()
	return b.Load(ctx)
}
