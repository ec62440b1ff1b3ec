// Package storage abstracts the database engines a compiled plan can be
// executed against. Adapters own connection setup, DDL and the dialect
// expressions the planner cannot express portably.
package storage

import (
	"context"
	"database/sql"

	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// MetaMagic marks a database as an orgquery store.
const MetaMagic = "orgquery"

// Adapter abstracts database-specific operations.
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	Dialect() Dialect

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// CreateStore applies the DDL and writes the magic plus the given
	// store id into the meta table.
	CreateStore(ctx context.Context, db *sql.DB, storeID string) error
	// OpenStore verifies the magic and returns the store id.
	OpenStore(ctx context.Context, db *sql.DB) (string, error)

	SQL() SQL
}

// Dialect supplies the engine-specific expressions plan lowering needs:
// month/day extraction from a date column and the inclusive day count
// between two date columns.
type Dialect interface {
	MonthExpr(col string) string
	DayExpr(col string) string
	DurationDaysExpr(startCol, endCol string) string
}

// SQL holds the engine's prepared statement templates for store
// maintenance and seeding.
type SQL struct {
	GetMeta string
	SetMeta string

	InsertEmployee string
	InsertTimeOff  string

	CountEmployees string
	CountTimeOff   string
}
