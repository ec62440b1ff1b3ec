// Package postgres is the postgres storage adapter, connected through the
// pgx stdlib bridge. Each store lives in a dedicated schema selected via
// search_path.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/orgquery/orgquery/orgquery/storage"
	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
)

type Adapter struct {
	DSN    string
	Schema string
}

func New(dsn, schema string) *Adapter {
	return &Adapter{DSN: dsn, Schema: schema}
}

func (a *Adapter) Backend() storage.Backend { return storage.BackendPostgres }

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderDollar
}

func (a *Adapter) Dialect() storage.Dialect { return Dialect{} }

func (a *Adapter) Close() error { return nil }

func (a *Adapter) SQL() storage.SQL { return SQLTemplates }

var schemaNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func quoteIdent(ident string) string {
	// ident is validated to contain no quotes; safe to wrap
	return `"` + ident + `"`
}

func (a *Adapter) ensureSchema(ctx context.Context, db *sql.DB) error {
	if a.Schema == "" || !schemaNameRe.MatchString(a.Schema) {
		return fmt.Errorf("invalid postgres schema name %q (must match %s)", a.Schema, schemaNameRe.String())
	}
	_, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+quoteIdent(a.Schema))
	return err
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	// Connect once without search_path to make sure the schema exists.
	cfg0, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, err
	}
	db0 := stdlib.OpenDB(*cfg0)
	if err := db0.PingContext(ctx); err != nil {
		db0.Close()
		return nil, err
	}
	if err := a.ensureSchema(ctx, db0); err != nil {
		db0.Close()
		return nil, err
	}
	db0.Close()

	cfg, err := pgx.ParseConfig(a.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	cfg.RuntimeParams["search_path"] = a.Schema

	db := stdlib.OpenDB(*cfg)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) CreateStore(ctx context.Context, db *sql.DB, storeID string) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
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

// Dialect lowers the planner's non-portable expressions over native DATE
// columns.
type Dialect struct{}

func (Dialect) MonthExpr(col string) string {
	return fmt.Sprintf("EXTRACT(MONTH FROM %s)::int", col)
}

func (Dialect) DayExpr(col string) string {
	return fmt.Sprintf("EXTRACT(DAY FROM %s)::int", col)
}

func (Dialect) DurationDaysExpr(startCol, endCol string) string {
	return fmt.Sprintf("(%s - %s) + 1", endCol, startCol)
}
