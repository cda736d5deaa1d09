package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"alpr_gateway/internal/models"
)

// ErrNotFound is returned when a delete or lookup targets a missing row.
var ErrNotFound = errors.New("not found")

type PeopleSQLite struct {
	db *sql.DB
}

func NewPeopleSQLite(db *sql.DB) *PeopleSQLite { return &PeopleSQLite{db: db} }

var _ PeopleRepo = (*PeopleSQLite)(nil)

const (
	selectPeopleSQL = `SELECT id, name, car_number, car_model, phone, address FROM people ORDER BY id ASC`

	upsertPersonSQL = `INSERT OR REPLACE INTO people (id, name, car_number, car_model, phone, address)
		VALUES (?, ?, ?, ?, ?, ?)`

	deletePersonSQL = `DELETE FROM people WHERE id = ?`

	selectPlatesByPrefixSQL = `SELECT car_number FROM people WHERE car_number LIKE ? ESCAPE '\'`
)

// nullableID maps the zero id to NULL so SQLite assigns a fresh one.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func (r *PeopleSQLite) List(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, selectPeopleSQL)
	if err != nil {
		return nil, fmt.Errorf("select people: %w", err)
	}
	defer rows.Close()

	out := make([]models.Person, 0, 32)
	for rows.Next() {
		var (
			p                                   models.Person
			name, number, model, phone, address sql.NullString
		)
		if err := rows.Scan(&p.ID, &name, &number, &model, &phone, &address); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Name, p.CarNumber, p.CarModel = name.String, number.String, model.String
		p.Phone, p.Address = phone.String, address.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return out, nil
}

// Upsert inserts a person, or replaces the row with the same id or car number.
func (r *PeopleSQLite) Upsert(ctx context.Context, p models.Person) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertPersonSQL,
		nullableID(p.ID), p.Name, p.CarNumber, p.CarModel, p.Phone, p.Address)
	if err != nil {
		return 0, fmt.Errorf("upsert person %q: %w", p.CarNumber, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for person %q: %w", p.CarNumber, err)
	}
	return id, nil
}

func (r *PeopleSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deletePersonSQL, id)
	if err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected deleting person %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByPlatePrefix returns registered car numbers starting with base.
func (r *PeopleSQLite) FindByPlatePrefix(ctx context.Context, base string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectPlatesByPrefixSQL, prefixPattern(base))
	if err != nil {
		return nil, fmt.Errorf("select plates by prefix %q: %w", base, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var plate sql.NullString
		if err := rows.Scan(&plate); err != nil {
			return nil, fmt.Errorf("scan plate: %w", err)
		}
		if plate.Valid {
			out = append(out, plate.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plates: %w", err)
	}
	return out, nil
}
