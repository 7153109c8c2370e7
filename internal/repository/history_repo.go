package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"maintenance_diagnosis/internal/models"
)

type HistorySQLite struct {
	db *sql.DB
}

func NewHistorySQLite(db *sql.DB) *HistorySQLite { return &HistorySQLite{db: db} }

var _ HistoryRepo = (*HistorySQLite)(nil)

const (
	historyColumns = `id, vibration, temperature, usage_hours, last_service, power_fluctuation,
		noise, sensor_error, oil_level_low, status, action, created_at`

	insertHistorySQL = `
		INSERT INTO history (vibration, temperature, usage_hours, last_service, power_fluctuation,
			noise, sensor_error, oil_level_low, status, action, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectAllHistorySQL = `SELECT ` + historyColumns + ` FROM history ORDER BY id ASC`

	// newest N rows, returned oldest first
	selectRecentHistorySQL = `SELECT ` + historyColumns + ` FROM (
		SELECT ` + historyColumns + ` FROM history ORDER BY id DESC LIMIT ?
	) ORDER BY id ASC`

	countHistorySQL  = `SELECT COUNT(*) FROM history`
	deleteHistorySQL = `DELETE FROM history`
)

// Append stores a reading and its diagnosis and returns the assigned id.
// A zero CreatedAt is set to now; times are stored in UTC.
func (r *HistorySQLite) Append(ctx context.Context, rec models.HistoryRecord) (int64, error) {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := r.db.ExecContext(ctx, insertHistorySQL,
		rec.Reading.Vibration,
		rec.Reading.Temperature,
		rec.Reading.UsageHours,
		rec.Reading.LastService,
		rec.Reading.PowerFluctuation,
		rec.Reading.Noise,
		rec.Reading.SensorError,
		rec.Reading.OilLevelLow,
		rec.Result.Status,
		rec.Result.Action,
		createdAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for history record: %w", err)
	}
	return id, nil
}

// List returns records in insertion order. limit <= 0 returns everything,
// otherwise only the most recent limit records.
func (r *HistorySQLite) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, selectRecentHistorySQL, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, selectAllHistorySQL)
	}
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRecord, 0, 64)
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Reading.Vibration,
			&rec.Reading.Temperature,
			&rec.Reading.UsageHours,
			&rec.Reading.LastService,
			&rec.Reading.PowerFluctuation,
			&rec.Reading.Noise,
			&rec.Reading.SensorError,
			&rec.Reading.OilLevelLow,
			&rec.Result.Status,
			&rec.Result.Action,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return out, nil
}

// Count returns the number of stored records.
func (r *HistorySQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countHistorySQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Clear deletes every record and returns how many were removed.
func (r *HistorySQLite) Clear(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteHistorySQL)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected by clear: %w", err)
	}
	return n, nil
}
