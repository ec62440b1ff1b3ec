package commands

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/orgquery/orgquery/internal/cliopt"
	"github.com/orgquery/orgquery/internal/cliutil"
	"github.com/orgquery/orgquery/orgquery/ops"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/storage"
)

// openStore connects to the configured backend and verifies the target is
// an orgquery store.
func openStore(ctx context.Context, g cliopt.GlobalOptions, store string) (*sql.DB, storage.Adapter, error) {
	a := cliutil.NewAdapter(g, store)
	db, err := a.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := a.OpenStore(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, a, nil
}

// readIntent decodes an intent flag value into dst. "-" reads stdin.
// Unknown fields are rejected so typos in intent keys fail loudly.
func readIntent(raw string, dst any) error {
	var r io.Reader
	if raw == "-" {
		r = os.Stdin
	} else {
		r = strings.NewReader(raw)
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func printResult(g cliopt.GlobalOptions, p *plan.Plan, res *ops.Result) {
	format := cliutil.ParseOutputFormat(g.Format)

	if format == cliutil.FormatJSON {
		out := map[string]any{
			"rows":    res.Rows,
			"columns": res.Columns,
		}
		if len(res.Notes) > 0 {
			out["notes"] = res.Notes
		}
		if g.Explain {
			out["plan"] = p.String()
			out["sql"] = res.SQL
			out["args"] = res.Args
		}
		cliutil.PrintJSON(os.Stdout, out)
		return
	}

	if g.Explain {
		fmt.Fprintln(os.Stdout, "=== Plan ===")
		fmt.Fprint(os.Stdout, p.String())
		fmt.Fprintln(os.Stdout, "\n=== SQL ===")
		fmt.Fprintln(os.Stdout, res.SQL)
		fmt.Fprintf(os.Stdout, "args: %v\n", res.Args)
		fmt.Fprintln(os.Stdout, "\n=== Results ===")
	}
	for _, note := range res.Notes {
		fmt.Fprintf(os.Stderr, "note: %s\n", note)
	}
	for _, row := range res.Rows {
		parts := make([]string, 0, len(res.Columns))
		for _, c := range res.Columns {
			parts = append(parts, fmt.Sprintf("%s=%v", c, row[c]))
		}
		fmt.Fprintln(os.Stdout, strings.Join(parts, "  "))
	}
	fmt.Fprintf(os.Stdout, "\n--- %d rows ---\n", len(res.Rows))
}
