package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cryosure/internal/models"

	"github.com/google/uuid"
)

type ConfigSQLite struct {
	db *sql.DB
}

func NewConfigSQLite(db *sql.DB) *ConfigSQLite { return &ConfigSQLite{db: db} }

const insertConfigSQL = `
		INSERT INTO saved_configs (id, created_at, storage_type, status, draft)
		VALUES (?, ?, ?, ?, ?)
	`

// Append stores a configuration. Missing ID, CreatedAt and Status are filled in.
func (r *ConfigSQLite) Append(ctx context.Context, c models.SavedConfig) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Status == "" {
		c.Status = models.SavedConfigActive
	}

	draft, err := json.Marshal(c.Draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertConfigSQL,
		c.ID,
		c.CreatedAt.UTC(),
		strings.TrimSpace(c.Draft.StorageType),
		c.Status,
		string(draft),
	)
	return err
}

// List returns configurations within [from, to] and of the given storage
// type (case-insensitive), most recent first. Zero bounds and an empty type
// are not filtered on.
func (r *ConfigSQLite) List(ctx context.Context, from, to time.Time, storageType string) ([]models.SavedConfig, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "created_at <= ?")
		args = append(args, to.UTC())
	}
	if storageType = strings.ToLower(strings.TrimSpace(storageType)); storageType != "" {
		conds = append(conds, "lower(storage_type) = ?")
		args = append(args, storageType)
	}

	q := `SELECT id, created_at, status, draft FROM saved_configs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.SavedConfig, 0, 16)
	for rows.Next() {
		var (
			c     models.SavedConfig
			draft string
		)
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.Status, &draft); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		if err := json.Unmarshal([]byte(draft), &c.Draft); err != nil {
			return nil, fmt.Errorf("decode draft of %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
