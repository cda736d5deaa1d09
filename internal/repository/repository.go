package repository

import (
	"context"
	"database/sql"

	"alpr_gateway/internal/models"
)

// HistoryFilter selects a window of history rows. Empty strings mean "no bound".
// From/To are compared against the stored "YYYY-MM-DD HH:MM:SS" text.
type HistoryFilter struct {
	Search string
	From   string
	To     string
	Limit  int
	Offset int
}

type HistoryRepo interface {
	Append(ctx context.Context, e models.HistoryEvent) (int64, error)
	Query(ctx context.Context, f HistoryFilter) ([]models.HistoryEvent, int, error)
	Dedupe(ctx context.Context, point, since, until string) (int, error)
	Prune(ctx context.Context, before string) (int, error)
}

type PeopleRepo interface {
	List(ctx context.Context) ([]models.Person, error)
	Upsert(ctx context.Context, p models.Person) (int64, error)
	Delete(ctx context.Context, id int64) error
	FindByPlatePrefix(ctx context.Context, base string) ([]string, error)
}

type PointRepo interface {
	List(ctx context.Context) ([]models.AccessPoint, error)
	Upsert(ctx context.Context, p models.AccessPoint) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	HistoryRepo HistoryRepo
	PeopleRepo  PeopleRepo
	PointRepo   PointRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		HistoryRepo: NewHistorySQLite(db),
		PeopleRepo:  NewPeopleSQLite(db),
		PointRepo:   NewPointSQLite(db),
	}
}
