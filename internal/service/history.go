package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"alpr_gateway/internal/logger"
	"alpr_gateway/internal/models"
	"alpr_gateway/internal/repository"
)

// DefaultHistoryLimit is the page size used when the caller does not pick one.
const DefaultHistoryLimit = 50

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrInvalidTime      = errors.New("invalid time")
	ErrEmptyPlate       = errors.New("empty or unreadable plate")
)

// boundLayouts are the accepted spellings of a from/to bound, most specific first.
var boundLayouts = []struct {
	layout    string
	precision time.Duration
}{
	{repository.TimestampLayout, time.Second},
	{"2006-01-02T15:04:05", time.Second},
	{"2006-01-02 15:04", time.Minute},
	{"2006-01-02T15:04", time.Minute},
	{"2006-01-02", 24 * time.Hour},
}

type HistoryService struct {
	repo   repository.HistoryRepo
	people repository.PeopleRepo
	log    *logger.Logger

	maxLimit       int
	repeatInterval time.Duration
	now            func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time // point + "\x00" + plate → last stored detection
}

func NewHistoryService(repo repository.HistoryRepo, people repository.PeopleRepo, log *logger.Logger,
	maxLimit int, repeatInterval time.Duration) *HistoryService {
	return &HistoryService{
		repo:           repo,
		people:         people,
		log:            log,
		maxLimit:       maxLimit,
		repeatInterval: repeatInterval,
		now:            time.Now,
		seen:           make(map[string]time.Time),
	}
}

// Query returns one page of history, newest first.
func (s *HistoryService) Query(ctx context.Context, q HistoryQuery) (models.HistoryPage, error) {
	f, err := s.normalizeQuery(q)
	if err != nil {
		return models.HistoryPage{}, err
	}
	items, total, err := s.repo.Query(ctx, f)
	if err != nil {
		return models.HistoryPage{}, err
	}
	if items == nil {
		items = []models.HistoryEvent{}
	}
	return models.HistoryPage{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *HistoryService) normalizeQuery(q HistoryQuery) (repository.HistoryFilter, error) {
	from, err := parseBound(q.From, false)
	if err != nil {
		return repository.HistoryFilter{}, err
	}
	to, err := parseBound(q.To, true)
	if err != nil {
		return repository.HistoryFilter{}, err
	}
	// fixed-width layout, so text order is time order
	if from != "" && to != "" && from > to {
		return repository.HistoryFilter{}, ErrInvalidTimeRange
	}

	limit := q.Limit
	switch {
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit < 1:
		limit = 1
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	return repository.HistoryFilter{
		Search: strings.TrimSpace(q.Search),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: max(q.Offset, 0),
	}, nil
}

// parseBound converts a user supplied bound into the stored timestamp layout.
// Bounds with less than second precision are widened to the end of their
// day or minute when used as an upper bound.
func parseBound(raw string, upper bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	for _, l := range boundLayouts {
		t, err := time.ParseInLocation(l.layout, raw, time.Local)
		if err != nil {
			continue
		}
		if upper {
			switch l.precision {
			case 24 * time.Hour:
				t = t.AddDate(0, 0, 1).Add(-time.Second)
			case time.Minute:
				t = t.Add(59 * time.Second)
			}
		}
		return t.Format(repository.TimestampLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(time.Local).Format(repository.TimestampLayout), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTime, raw)
}

// Record normalizes a detected plate, completes a missing region from the
// people registry and stores it. Repeats of the same plate at the same point
// within the repeat interval are skipped.
func (s *HistoryService) Record(ctx context.Context, p RecordParams) (RecordResult, error) {
	plate := NormalizePlate(p.Plate)
	if plate == "" {
		return RecordResult{}, fmt.Errorf("%w: %q", ErrEmptyPlate, p.Plate)
	}

	if base, region, ok := ParsePlate(plate); ok && region == "" {
		candidates, err := s.people.FindByPlatePrefix(ctx, base)
		if err != nil {
			return RecordResult{}, err
		}
		if full := completePlate(base, candidates); full != "" && full != plate {
			s.log.Debugw("plate_completed", "from", plate, "to", full)
			plate = full
		}
	}

	at := p.At
	if at.IsZero() {
		at = s.now()
	}
	ev := models.HistoryEvent{
		Timestamp: at.In(time.Local).Format(repository.TimestampLayout),
		Plate:     plate,
		PointName: pointName(p.Point, p.Direction),
	}

	if s.recentlySeen(ev.PointName, plate, at) {
		s.log.Debugw("plate_repeat_skipped", "plate", plate, "point", ev.PointName)
		return RecordResult{Event: ev, Skipped: true}, nil
	}

	id, err := s.repo.Append(ctx, ev)
	if err != nil {
		return RecordResult{}, err
	}
	ev.ID = id
	s.markSeen(ev.PointName, plate, at)

	s.log.Infow("plate_recorded", "plate", plate, "point", ev.PointName, "id", id)
	return RecordResult{Event: ev}, nil
}

// pointName joins a point and an optional direction the way history stores
// them: "Gate" or `Gate\IN`.
func pointName(point, direction string) string {
	point = strings.TrimSpace(point)
	direction = strings.ToUpper(strings.TrimSpace(direction))
	if direction == "" {
		return point
	}
	return point + `\` + direction
}

func (s *HistoryService) recentlySeen(point, plate string, at time.Time) bool {
	if s.repeatInterval <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	last, ok := s.seen[point+"\x00"+plate]
	return ok && at.Sub(last) < s.repeatInterval
}

func (s *HistoryService) markSeen(point, plate string, at time.Time) {
	if s.repeatInterval <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, t := range s.seen {
		if at.Sub(t) >= s.repeatInterval {
			delete(s.seen, k)
		}
	}
	s.seen[point+"\x00"+plate] = at
}

// Dedupe removes repeated plate/point rows inside the window, keeping the
// earliest. A zero Until means now.
func (s *HistoryService) Dedupe(ctx context.Context, p DedupeParams) (int, error) {
	until := p.Until
	if until.IsZero() {
		until = s.now()
	}
	if !p.Since.IsZero() && p.Since.After(until) {
		return 0, ErrInvalidTimeRange
	}
	since := ""
	if !p.Since.IsZero() {
		since = p.Since.In(time.Local).Format(repository.TimestampLayout)
	}

	n, err := s.repo.Dedupe(ctx, strings.TrimSpace(p.Point), since, until.In(time.Local).Format(repository.TimestampLayout))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Infow("history_deduplicated", "point", p.Point, "removed", n)
	}
	return n, nil
}

// Prune deletes history older than the given age.
func (s *HistoryService) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	before := s.now().Add(-olderThan).In(time.Local).Format(repository.TimestampLayout)
	n, err := s.repo.Prune(ctx, before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Infow("history_pruned", "before", before, "removed", n)
	}
	return n, nil
}
