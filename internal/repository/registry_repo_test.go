package repository

import (
	"errors"
	"regexp"
	"testing"

	"alpr_gateway/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
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
	return NewRepository(db), mock
}

func TestPeopleList_NullColumnsBecomeEmpty(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "car_number", "car_model", "phone", "address"}).
		AddRow(1, "Ivanov", "А123ВС77", "Lada", nil, nil).
		AddRow(2, nil, "В456ОР199", nil, "+7 900", "Main st")
	mock.ExpectQuery(regexp.QuoteMeta(selectPeopleSQL)).WillReturnRows(rows)

	got, err := repos.PeopleRepo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 people, got %d", len(got))
	}
	if got[0].Phone != "" || got[0].CarModel != "Lada" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].Name != "" || got[1].Address != "Main st" {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
}

func TestPeopleUpsert_NewRowPassesNullID(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(upsertPersonSQL)).
		WithArgs(nil, "Ivanov", "А123ВС77", "", "", "").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repos.PeopleRepo.Upsert(ctx(t), models.Person{Name: "Ivanov", CarNumber: "А123ВС77"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if id != 5 {
		t.Fatalf("want id 5, got %d", id)
	}
}

func TestPeopleDelete_MissingRow(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(deletePersonSQL)).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repos.PeopleRepo.Delete(ctx(t), 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPeopleFindByPlatePrefix_EscapesPattern(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectPlatesByPrefixSQL)).
		WithArgs(`А123ВС%`).
		WillReturnRows(sqlmock.NewRows([]string{"car_number"}).AddRow("А123ВС77").AddRow(nil))

	got, err := repos.PeopleRepo.FindByPlatePrefix(ctx(t), "А123ВС")
	if err != nil {
		t.Fatalf("FindByPlatePrefix: %v", err)
	}
	if len(got) != 1 || got[0] != "А123ВС77" {
		t.Fatalf("unexpected plates: %v", got)
	}
}

func TestPointsList_And_Upsert(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectPointsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "mqtt_topic", "in_camera_url", "out_camera_url"}).
			AddRow(1, "Gate", "gate", "rtsp://cam-in", nil))
	mock.ExpectExec(regexp.QuoteMeta(upsertPointSQL)).
		WithArgs(int64(1), "Gate", "gate", "rtsp://cam-in", "rtsp://cam-out").
		WillReturnResult(sqlmock.NewResult(1, 1))

	points, err := repos.PointRepo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(points) != 1 || points[0].OutCameraURL != "" {
		t.Fatalf("unexpected points: %+v", points)
	}

	p := points[0]
	p.OutCameraURL = "rtsp://cam-out"
	if _, err := repos.PointRepo.Upsert(ctx(t), p); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
}

func TestPointsDelete_DBError(t *testing.T) {
	t.Parallel()
	repos, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(deletePointSQL)).
		WithArgs(int64(3)).
		WillReturnError(errors.New("locked"))

	if err := repos.PointRepo.Delete(ctx(t), 3); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("want wrapped db error, got %v", err)
	}
}
