package sql

import (
	"context"
	stdsql "database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// ConfigStore implements queuectl.ConfigStore using the config table.
type ConfigStore struct {
	db *bun.DB
}

// NewConfigStore creates a new SQL-backed ConfigStore.
func NewConfigStore(db *bun.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

// Get returns the stored value for key, or ("", false, nil) if unset.
func (c *ConfigStore) Get(ctx context.Context, key string) (string, bool, error) {
	var row configModel
	err := c.db.NewSelect().Model(&row).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, stdsql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Value, true, nil
}

// Set upserts key to value.
func (c *ConfigStore) Set(ctx context.Context, key, value string) error {
	_, err := c.db.NewInsert().
		Model(&configModel{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
