// Package sqlite is the default storage adapter. It works with both the
// CGO-free modernc driver ("sqlite") and mattn/go-sqlite3 ("sqlite3");
// the caller imports whichever driver it wants.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/orgquery/orgquery/orgquery/storage"
	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: "sqlite"}
}

func NewWithDriver(path, driver string) *Adapter {
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) Dialect() storage.Dialect {
	return Dialect{}
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	dsn := a.Path
	if strings.Contains(dsn, "?") {
		dsn += "&_busy_timeout=5000&_foreign_keys=on"
	} else {
		dsn += "?_busy_timeout=5000&_foreign_keys=on"
	}
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) SQL() storage.SQL {
	return SQLTemplates
}

func (a *Adapter) CreateStore(ctx context.Context, db *sql.DB, storeID string) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys=ON;")

	sqlt := a.SQL()
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, "magic", storage.MetaMagic); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, "store_id", storeID); err != nil {
		return err
	}
	return nil
}

func (a *Adapter) OpenStore(ctx context.Context, db *sql.DB) (string, error) {
	sqlt := a.SQL()

	var magic string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, "magic").Scan(&magic); err != nil {
		return "", fmt.Errorf("not an orgquery store: %w", err)
	}
	if magic != storage.MetaMagic {
		return "", fmt.Errorf("not an orgquery store: magic %q", magic)
	}

	var storeID string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, "store_id").Scan(&storeID); err != nil {
		return "", err
	}
	return storeID, nil
}

// Dialect lowers the planner's non-portable expressions. Dates are stored
// as ISO-8601 TEXT, so strftime extracts month/day and julianday yields
// day distances.
type Dialect struct{}

func (Dialect) MonthExpr(col string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", col)
}

func (Dialect) DayExpr(col string) string {
	return fmt.Sprintf("CAST(strftime('%%d', %s) AS INTEGER)", col)
}

func (Dialect) DurationDaysExpr(startCol, endCol string) string {
	return fmt.Sprintf("CAST(julianday(%s) - julianday(%s) AS INTEGER) + 1", endCol, startCol)
}
