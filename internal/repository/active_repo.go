package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cryosure/internal/models"
)

type ActiveSQLite struct {
	db *sql.DB
}

func NewActiveSQLite(db *sql.DB) *ActiveSQLite {
	return &ActiveSQLite{db: db}
}

const (
	activeThresholdsRowID = 1

	upsertActiveSQL = `
		INSERT INTO active_thresholds (id, profile_name, min_temp, max_temp, max_humidity, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			profile_name=excluded.profile_name,
			min_temp=excluded.min_temp,
			max_temp=excluded.max_temp,
			max_humidity=excluded.max_humidity,
			updated_at=excluded.updated_at
	`

	selectActiveSQL = `
		SELECT id, profile_name, min_temp, max_temp, max_humidity, updated_at
		FROM active_thresholds WHERE id=?
	`
)

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// Save replaces the active row (id always 1).
func (r *ActiveSQLite) Save(ctx context.Context, a models.ActiveThresholds) error {
	ts := a.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertActiveSQL,
		activeThresholdsRowID,
		a.ProfileName,
		nullFloat(a.MinTemp),
		nullFloat(a.MaxTemp),
		nullFloat(a.MaxHumidity),
		ts,
	)
	return err
}

// Load returns the active row, or a zero value (ID 0) if nothing was saved yet.
func (r *ActiveSQLite) Load(ctx context.Context) (models.ActiveThresholds, error) {
	row := r.db.QueryRowContext(ctx, selectActiveSQL, activeThresholdsRowID)

	var (
		a                    models.ActiveThresholds
		minT, maxT, humidity sql.NullFloat64
	)
	if err := row.Scan(&a.ID, &a.ProfileName, &minT, &maxT, &humidity, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ActiveThresholds{}, nil
		}
		return models.ActiveThresholds{}, err
	}
	a.MinTemp = floatPtr(minT)
	a.MaxTemp = floatPtr(maxT)
	a.MaxHumidity = floatPtr(humidity)
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
