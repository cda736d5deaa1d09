package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"alpr_gateway/internal/models"
)

type HistorySQLite struct {
	db *sql.DB
}

func NewHistorySQLite(db *sql.DB) *HistorySQLite { return &HistorySQLite{db: db} }

// Ensure implementation of HistoryRepo interface at compile time.
var _ HistoryRepo = (*HistorySQLite)(nil)

// TimestampLayout is how history timestamps are stored and compared.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	insertHistorySQL = `INSERT INTO history (timestamp, plate, point_name) VALUES (?, ?, ?)`

	selectHistoryColumns = `SELECT id, timestamp, plate, point_name FROM history`
	countHistorySQL      = `SELECT COUNT(*) FROM history`

	selectDedupeCandidatesSQL = `SELECT id, plate, point_name FROM history WHERE timestamp >= ? AND timestamp <= ?`
	dedupePointCond           = ` AND (point_name = ? OR point_name LIKE ? ESCAPE '\')`
	dedupeOrder               = ` ORDER BY timestamp ASC, id ASC`

	pruneHistorySQL = `DELETE FROM history WHERE timestamp < ?`

	deleteBatchSize = 500
)

// Append inserts a new event. An empty Timestamp is set to the current local time.
func (r *HistorySQLite) Append(ctx context.Context, e models.HistoryEvent) (int64, error) {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().Format(TimestampLayout)
	}
	res, err := r.db.ExecContext(ctx, insertHistorySQL, e.Timestamp, e.Plate, e.PointName)
	if err != nil {
		return 0, fmt.Errorf("insert history %q@%q: %w", e.Plate, e.PointName, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for history: %w", err)
	}
	return id, nil
}

// buildHistoryWhere renders the filter part shared by the count and page queries.
func buildHistoryWhere(f HistoryFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Search != "" {
		conds = append(conds, `plate LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.Search))
	}
	if f.From != "" {
		conds = append(conds, "timestamp >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		conds = append(conds, "timestamp <= ?")
		args = append(args, f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Query returns one page of events, newest first, and the total match count.
func (r *HistorySQLite) Query(ctx context.Context, f HistoryFilter) ([]models.HistoryEvent, int, error) {
	where, args := buildHistoryWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, countHistorySQL+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	q := selectHistoryColumns + where + " ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryEvent, 0, f.Limit)
	for rows.Next() {
		var (
			ev                   models.HistoryEvent
			ts, plate, pointName sql.NullString
		)
		if err := rows.Scan(&ev.ID, &ts, &plate, &pointName); err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		ev.Timestamp, ev.Plate, ev.PointName = ts.String, plate.String, pointName.String
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate history: %w", err)
	}
	return out, total, nil
}

// Dedupe deletes repeated (plate, point_name) rows inside [since, until],
// keeping the earliest of each. A non-empty point restricts it to that point
// and its directions ("Gate", `Gate\IN`, `Gate\OUT`).
func (r *HistorySQLite) Dedupe(ctx context.Context, point, since, until string) (int, error) {
	q := selectDedupeCandidatesSQL
	args := []any{since, until}
	if point != "" {
		q += dedupePointCond
		args = append(args, point, prefixPattern(point+`\`))
	}
	rows, err := r.db.QueryContext(ctx, q+dedupeOrder, args...)
	if err != nil {
		return 0, fmt.Errorf("select dedupe candidates: %w", err)
	}

	type key struct{ plate, point string }
	seen := make(map[key]struct{})
	var dupes []any
	for rows.Next() {
		var (
			id           int64
			plate, point sql.NullString
		)
		if err := rows.Scan(&id, &plate, &point); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("scan dedupe candidate: %w", err)
		}
		k := key{plate.String, point.String}
		if _, dup := seen[k]; dup {
			dupes = append(dupes, id)
			continue
		}
		seen[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return 0, fmt.Errorf("iterate dedupe candidates: %w", err)
	}
	_ = rows.Close()

	if len(dupes) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin dedupe transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(dupes); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(dupes) {
			end = len(dupes)
		}
		chunk := dupes[start:end]
		q := "DELETE FROM history WHERE id IN (" + strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",") + ")"
		if _, err := tx.ExecContext(ctx, q, chunk...); err != nil {
			return 0, fmt.Errorf("delete duplicate history batch: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dedupe transaction: %w", err)
	}
	return len(dupes), nil
}

// Prune deletes every row older than before.
func (r *HistorySQLite) Prune(ctx context.Context, before string) (int, error) {
	res, err := r.db.ExecContext(ctx, pruneHistorySQL, before)
	if err != nil {
		return 0, fmt.Errorf("prune history before %q: %w", before, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected by prune: %w", err)
	}
	return int(n), nil
}
