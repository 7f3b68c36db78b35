package repository

import (
	"context"
	"database/sql"
	"time"

	"cryosure/internal/models"
)

// ActiveRepo stores the single active-threshold row.
type ActiveRepo interface {
	Save(ctx context.Context, a models.ActiveThresholds) error
	Load(ctx context.Context) (models.ActiveThresholds, error)
}

// ConfigRepo is the append-only history of accepted configurations.
type ConfigRepo interface {
	Append(ctx context.Context, c models.SavedConfig) error
	List(ctx context.Context, from, to time.Time, storageType string) ([]models.SavedConfig, error)
}

type Repository struct {
	ActiveRepo ActiveRepo
	ConfigRepo ConfigRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ActiveRepo: NewActiveSQLite(db),
		ConfigRepo: NewConfigSQLite(db),
	}
}
