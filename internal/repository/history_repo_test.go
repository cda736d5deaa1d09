package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"alpr_gateway/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newHistoryMock(t *testing.T) (*HistorySQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	})
	return NewHistorySQLite(db), mock
}

func TestHistoryAppend_DefaultsTimestamp(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectExec(regexp.QuoteMeta(insertHistorySQL)).
		WithArgs(sqlmock.AnyArg(), "А123ВС77", `Gate\IN`).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := repo.Append(ctx(t), models.HistoryEvent{Plate: "А123ВС77", PointName: `Gate\IN`})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id != 11 {
		t.Fatalf("want id 11, got %d", id)
	}
}

func TestHistoryAppend_DBError(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectExec("INSERT INTO history").WillReturnError(errors.New("down"))

	_, err := repo.Append(ctx(t), models.HistoryEvent{Timestamp: "2024-01-01 00:00:00", Plate: "X", PointName: "P"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestHistoryQuery_NoFilters(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM history`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, timestamp, plate, point_name FROM history ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`)).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "plate", "point_name"}).
			AddRow(2, "2024-01-02 10:00:00", "B", "Gate1").
			AddRow(1, "2024-01-01 10:00:00", nil, "Gate1"))

	items, total, err := repo.Query(ctx(t), HistoryFilter{Limit: 50})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("want 2/2, got total=%d len=%d", total, len(items))
	}
	if items[0].ID != 2 || items[1].Plate != "" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestHistoryQuery_WithFilters_OrderAndArgs(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	where := ` WHERE plate LIKE ? ESCAPE '\' AND timestamp >= ? AND timestamp <= ?`
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM history` + where)).
		WithArgs(`%12\_3%`, "2024-01-01 00:00:00", "2024-01-31 23:59:59").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, timestamp, plate, point_name FROM history` + where + ` ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`)).
		WithArgs(`%12\_3%`, "2024-01-01 00:00:00", "2024-01-31 23:59:59", 50, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "plate", "point_name"}))

	items, total, err := repo.Query(ctx(t), HistoryFilter{
		Search: "12_3",
		From:   "2024-01-01 00:00:00",
		To:     "2024-01-31 23:59:59",
		Limit:  50,
		Offset: 50,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if total != 120 || len(items) != 0 {
		t.Fatalf("unexpected result total=%d items=%v", total, items)
	}
}

func TestHistoryQuery_CountError(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("locked"))

	if _, _, err := repo.Query(ctx(t), HistoryFilter{Limit: 10}); err == nil || !strings.Contains(err.Error(), "count history") {
		t.Fatalf("expected count error, got %v", err)
	}
}

func TestHistoryPrune(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectExec(regexp.QuoteMeta(pruneHistorySQL)).
		WithArgs("2024-01-01 00:00:00").
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.Prune(ctx(t), "2024-01-01 00:00:00")
	if err != nil || n != 7 {
		t.Fatalf("Prune: n=%d err=%v", n, err)
	}
}

func TestHistoryDedupe_NothingToDelete(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDedupeCandidatesSQL + dedupePointCond + dedupeOrder)).
		WithArgs("2024-01-01 10:00:00", "2024-01-01 10:05:00", "Gate", `Gate\\%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate", "point_name"}).
			AddRow(1, "A", `Gate\IN`).
			AddRow(2, "B", `Gate\IN`))

	n, err := repo.Dedupe(ctx(t), "Gate", "2024-01-01 10:00:00", "2024-01-01 10:05:00")
	if err != nil || n != 0 {
		t.Fatalf("Dedupe: n=%d err=%v", n, err)
	}
}

func TestHistoryDedupe_DeletesDuplicatesInTransaction(t *testing.T) {
	t.Parallel()
	repo, mock := newHistoryMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDedupeCandidatesSQL + dedupeOrder)).
		WithArgs("2024-01-01 10:00:00", "2024-01-01 10:05:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "plate", "point_name"}).
			AddRow(1, "A", "Gate").
			AddRow(2, "A", "Gate").
			AddRow(3, "A", "Yard").
			AddRow(4, "A", "Gate"))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM history WHERE id IN (?,?)")).
		WithArgs(2, 4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := repo.Dedupe(ctx(t), "", "2024-01-01 10:00:00", "2024-01-01 10:05:00")
	if err != nil || n != 2 {
		t.Fatalf("Dedupe: n=%d err=%v", n, err)
	}
}
