package repository

import (
	"context"
	"database/sql"
	"fmt"

	"alpr_gateway/internal/models"
)

type PointSQLite struct {
	db *sql.DB
}

func NewPointSQLite(db *sql.DB) *PointSQLite { return &PointSQLite{db: db} }

var _ PointRepo = (*PointSQLite)(nil)

const (
	selectPointsSQL = `SELECT id, name, mqtt_topic, in_camera_url, out_camera_url FROM points ORDER BY id ASC`

	upsertPointSQL = `INSERT OR REPLACE INTO points (id, name, mqtt_topic, in_camera_url, out_camera_url)
		VALUES (?, ?, ?, ?, ?)`

	deletePointSQL = `DELETE FROM points WHERE id = ?`
)

func (r *PointSQLite) List(ctx context.Context) ([]models.AccessPoint, error) {
	rows, err := r.db.QueryContext(ctx, selectPointsSQL)
	if err != nil {
		return nil, fmt.Errorf("select points: %w", err)
	}
	defer rows.Close()

	out := make([]models.AccessPoint, 0, 8)
	for rows.Next() {
		var (
			p                          models.AccessPoint
			name, topic, inURL, outURL sql.NullString
		)
		if err := rows.Scan(&p.ID, &name, &topic, &inURL, &outURL); err != nil {
			return nil, fmt.Errorf("scan point: %w", err)
		}
		p.Name, p.MQTTTopic, p.InCameraURL, p.OutCameraURL = name.String, topic.String, inURL.String, outURL.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate points: %w", err)
	}
	return out, nil
}

// Upsert inserts a point, or replaces the row with the same id or name.
func (r *PointSQLite) Upsert(ctx context.Context, p models.AccessPoint) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertPointSQL,
		nullableID(p.ID), p.Name, p.MQTTTopic, p.InCameraURL, p.OutCameraURL)
	if err != nil {
		return 0, fmt.Errorf("upsert point %q: %w", p.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for point %q: %w", p.Name, err)
	}
	return id, nil
}

func (r *PointSQLite) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deletePointSQL, id)
	if err != nil {
		return fmt.Errorf("delete point %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected deleting point %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
