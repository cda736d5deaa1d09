package historybrowser

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"

	"alpr_gateway/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingView struct {
	mu         sync.Mutex
	rows       []HistoryRow
	summary    string
	pagination Pagination
	renders    int
}

func (v *recordingView) RenderRows(rows []HistoryRow) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.renders++
}

func (v *recordingView) SetSummary(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.summary = s
}

func (v *recordingView) SetPagination(p Pagination) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pagination = p
}

type fetchFunc func(ctx context.Context, q url.Values) (HistoryResponse, error)

func (f fetchFunc) FetchHistory(ctx context.Context, q url.Values) (HistoryResponse, error) {
	return f(ctx, q)
}

// scripted returns the given responses in order and records each query.
type scripted struct {
	mu      sync.Mutex
	replies []reply
	queries []url.Values
}

type reply struct {
	resp HistoryResponse
	err  error
}

func (s *scripted) FetchHistory(_ context.Context, q url.Values) (HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if len(s.replies) == 0 {
		return HistoryResponse{}, nil
	}
	r := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return r.resp, r.err
}

func (s *scripted) last() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries[len(s.queries)-1]
}

func observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func pageOf(n int) []HistoryRow {
	rows := make([]HistoryRow, n)
	for i := range rows {
		rows[i] = HistoryRow{Timestamp: "2024-01-01 00:00:00", Plate: "А001АА77", PointName: "Gate1"}
	}
	return rows
}

func TestLoad_SingleRowRoundTrip(t *testing.T) {
	row := HistoryRow{Timestamp: "2024-01-01T00:00:00Z", Plate: "AB123CD", PointName: "Gate1"}
	src := &scripted{replies: []reply{{resp: HistoryResponse{Items: []HistoryRow{row}, Total: 1}}}}
	view := &recordingView{}
	b := New(src, view, nil)

	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, "showing 1–1 of 1", view.summary)
	require.Len(t, view.rows, 1)
	assert.Equal(t, "2024-01-01T00:00:00Z", view.rows[0].Timestamp)
	assert.Equal(t, "AB123CD", view.rows[0].Plate)
	assert.Equal(t, "Gate1", view.rows[0].PointName)
	assert.Equal(t, Pagination{}, view.pagination)
	assert.Equal(t, 1, b.State().Total)

	q := src.last()
	assert.Equal(t, "50", q.Get("limit"))
	assert.Equal(t, "0", q.Get("offset"))
}

func TestLoad_EmptyResult(t *testing.T) {
	src := &scripted{replies: []reply{{resp: HistoryResponse{Items: []HistoryRow{}, Total: 0}}}}
	view := &recordingView{rows: pageOf(3)}
	b := New(src, view, nil)

	require.NoError(t, b.Load(context.Background()))

	assert.Equal(t, "no results", view.summary)
	assert.Empty(t, view.rows)
	assert.NotNil(t, view.rows)
	assert.False(t, view.pagination.Prev)
	assert.False(t, view.pagination.Next)
}

func TestLoad_MiddlePage(t *testing.T) {
	src := &scripted{replies: []reply{
		{resp: HistoryResponse{Items: pageOf(50), Total: 120}},
		{resp: HistoryResponse{Items: pageOf(50), Total: 120}},
	}}
	view := &recordingView{}
	b := New(src, view, nil)

	require.NoError(t, b.Load(context.Background()))
	assert.False(t, view.pagination.Prev)
	assert.True(t, view.pagination.Next)

	require.NoError(t, b.NextPage(context.Background()))

	assert.Equal(t, 50, b.State().Offset)
	assert.Equal(t, "showing 51–100 of 120", view.summary)
	assert.True(t, view.pagination.Prev)
	assert.True(t, view.pagination.Next)
	assert.Equal(t, view.pagination, b.Pagination())
}

func TestLoad_TransportFailureKeepsView(t *testing.T) {
	log, logs := observed()
	first := HistoryResponse{Items: pageOf(2), Total: 2}
	src := &scripted{replies: []reply{
		{resp: first},
		{err: errors.New("connection refused")},
	}}
	view := &recordingView{}
	b := New(src, view, log)

	require.NoError(t, b.Load(context.Background()))
	rowsBefore, summaryBefore, pagBefore := view.rows, view.summary, view.pagination
	stateBefore := b.State()

	err := b.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, rowsBefore, view.rows)
	assert.Equal(t, summaryBefore, view.summary)
	assert.Equal(t, pagBefore, view.pagination)
	assert.Equal(t, 1, view.renders)
	assert.Equal(t, stateBefore, b.State())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "history_load_failed", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestApplyFilters_ResetsOffset(t *testing.T) {
	src := &scripted{replies: []reply{{resp: HistoryResponse{Items: pageOf(50), Total: 500}}}}
	b := New(src, &recordingView{}, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, b.NextPage(ctx))
	}
	require.Equal(t, 150, b.State().Offset)

	require.NoError(t, b.ApplyFilters(ctx, "А12", "2024-01-01", "2024-01-31"))

	st := b.State()
	assert.Equal(t, 0, st.Offset)
	assert.Equal(t, "А12", st.Search)

	q := src.last()
	assert.Equal(t, "А12", q.Get("search"))
	assert.Equal(t, "2024-01-01", q.Get("from"))
	assert.Equal(t, "2024-01-31", q.Get("to"))
	assert.Equal(t, "0", q.Get("offset"))
}

func TestResetFilters_ClearsEverything(t *testing.T) {
	src := &scripted{}
	b := New(src, &recordingView{}, nil)
	ctx := context.Background()

	require.NoError(t, b.ApplyFilters(ctx, "X", "2024-01-01", ""))
	require.NoError(t, b.NextPage(ctx))
	require.NoError(t, b.ResetFilters(ctx))

	st := b.State()
	assert.Empty(t, st.Search)
	assert.Empty(t, st.From)
	assert.Empty(t, st.To)
	assert.Zero(t, st.Offset)

	q := src.last()
	assert.False(t, q.Has("search"))
	assert.False(t, q.Has("from"))
	assert.False(t, q.Has("to"))
}

func TestPrevPage_ClampsAtZero(t *testing.T) {
	b := New(&scripted{}, &recordingView{}, nil, WithLimit(20))
	ctx := context.Background()

	require.NoError(t, b.PrevPage(ctx))
	assert.Equal(t, 0, b.State().Offset)

	require.NoError(t, b.NextPage(ctx))
	require.NoError(t, b.NextPage(ctx))
	require.NoError(t, b.PrevPage(ctx))
	assert.Equal(t, 20, b.State().Offset)
}

func TestNextPage_AdvancesByLimit(t *testing.T) {
	b := New(&scripted{}, &recordingView{}, nil, WithLimit(25))
	ctx := context.Background()

	prev := b.State().Offset
	for i := 0; i < 5; i++ {
		require.NoError(t, b.NextPage(ctx))
		cur := b.State().Offset
		assert.Equal(t, prev+25, cur)
		prev = cur
	}
}

func TestWithLimit_IgnoresNonPositive(t *testing.T) {
	b := New(&scripted{}, &recordingView{}, nil, WithLimit(0))
	assert.Equal(t, DefaultLimit, b.State().Limit)
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	log, logs := observed()
	entered := make(chan struct{})
	release := make(chan struct{})

	var calls int
	var mu sync.Mutex
	src := fetchFunc(func(_ context.Context, q url.Values) (HistoryResponse, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(entered)
			<-release
			return HistoryResponse{Items: []HistoryRow{{Plate: "OLD"}}, Total: 1}, errors.New("late failure")
		}
		return HistoryResponse{Items: []HistoryRow{{Plate: "NEW"}}, Total: 1}, nil
	})

	view := &recordingView{}
	b := New(src, view, log)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- b.Load(ctx) }()
	<-entered

	require.NoError(t, b.ApplyFilters(ctx, "NEW", "", ""))
	close(release)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	require.Len(t, view.rows, 1)
	assert.Equal(t, "NEW", view.rows[0].Plate)
	assert.Equal(t, 1, view.renders)
	assert.Zero(t, logs.Len())
}

func TestSummaryIsNoResultsIffTotalZero(t *testing.T) {
	for _, tc := range []struct {
		offset, n, total int
	}{
		{0, 0, 0}, {50, 0, 0}, {0, 1, 1}, {100, 0, 40}, {0, 50, 51},
	} {
		got := Summary(tc.offset, tc.n, tc.total)
		assert.Equal(t, tc.total == 0, got == "no results", "offset=%d n=%d total=%d", tc.offset, tc.n, tc.total)
	}
}

func TestWithLimit_CappedAtGatewayMaximum(t *testing.T) {
	src := &scripted{replies: []reply{{resp: HistoryResponse{Items: pageOf(MaxLimit), Total: 1000}}}}
	view := &recordingView{}
	b := New(src, view, nil, WithLimit(500))
	ctx := context.Background()

	require.Equal(t, MaxLimit, b.State().Limit)
	require.NoError(t, b.Load(ctx))
	assert.Equal(t, "200", src.last().Get("limit"))
	assert.Equal(t, "showing 1–200 of 1000", view.summary)

	require.NoError(t, b.NextPage(ctx))
	assert.Equal(t, "200", src.last().Get("offset"), "no rows skipped between pages")
	assert.Equal(t, "showing 201–400 of 1000", view.summary)
}
