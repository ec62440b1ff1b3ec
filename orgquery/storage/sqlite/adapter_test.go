package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// The adapter is driver-agnostic: the CGO-free modernc driver and
// mattn/go-sqlite3 must both produce a working store.
func TestCreateAndOpenStoreAcrossDrivers(t *testing.T) {
	drivers := map[string]func(path string) *Adapter{
		"modernc": New,
		"mattn":   func(path string) *Adapter { return NewWithDriver(path, "sqlite3") },
	}

	for name, mk := range drivers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			a := mk(filepath.Join(t.TempDir(), "store.db"))

			db, err := a.Connect(ctx)
			if err != nil {
				t.Fatalf("connect: %v", err)
			}
			defer db.Close()

			if err := a.CreateStore(ctx, db, "abc-123"); err != nil {
				t.Fatalf("create store: %v", err)
			}
			storeID, err := a.OpenStore(ctx, db)
			if err != nil {
				t.Fatalf("open store: %v", err)
			}
			if storeID != "abc-123" {
				t.Fatalf("store id = %q", storeID)
			}

			// DDL is idempotent.
			if err := a.CreateStore(ctx, db, "abc-123"); err != nil {
				t.Fatalf("re-create store: %v", err)
			}
		})
	}
}

func TestOpenStoreRejectsForeignDatabase(t *testing.T) {
	ctx := context.Background()
	a := New(filepath.Join(t.TempDir(), "other.db"))

	db, err := a.Connect(ctx)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT)"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES ('magic', 'something-else')"); err != nil {
		t.Fatal(err)
	}

	if _, err := a.OpenStore(ctx, db); err == nil {
		t.Fatal("expected foreign database to be rejected")
	}
}

func TestDialectExpressions(t *testing.T) {
	d := Dialect{}

	if got := d.MonthExpr("e.birth_date"); got != "CAST(strftime('%m', e.birth_date) AS INTEGER)" {
		t.Fatalf("month expr = %s", got)
	}
	if got := d.DayExpr("e.birth_date"); !strings.Contains(got, "'%d'") {
		t.Fatalf("day expr = %s", got)
	}
	if got := d.DurationDaysExpr("t.start_date", "t.end_date"); !strings.HasSuffix(got, "+ 1") {
		t.Fatalf("duration expr = %s", got)
	}
}
