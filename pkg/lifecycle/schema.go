package lifecycle

import (
	"context"

	"github.com/ecoglobe/biosync/pkg/config"
)

// SchemaManager creates and migrates the species and clusters tables.
// All operations are idempotent.
type SchemaManager interface {
	// Create runs AutoMigrate on an empty database and adds the indexes
	// GORM does not manage, such as the JSONB index of species locations.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate adds missing tables, columns and indexes. It never drops
	// columns or tables.
	Migrate(ctx context.Context, cfg *config.Config) error

	// Status reports tables and indexes of the schema.
	Status(ctx context.Context) ([]TableStatus, error)
}

// TableStatus describes one biosync table in the database.
type TableStatus struct {
	Table  string `json:"table"`
	Exists bool   `json:"exists"`

	// Rows is zero for missing tables.
	Rows int64 `json:"rows"`

	// MissingIndexes are indexes that Migrate would create.
	MissingIndexes []string `json:"missing_indexes,omitempty"`
}

// Ready is true when the table and all its indexes exist.
func (t TableStatus) Ready() bool {
	return t.Exists && len(t.MissingIndexes) == 0
}
