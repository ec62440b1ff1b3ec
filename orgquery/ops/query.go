// Package ops executes compiled plans against an open store and shapes
// the results for callers.
package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/plan"
	"github.com/orgquery/orgquery/orgquery/planner"
	"github.com/orgquery/orgquery/orgquery/storage"
	"github.com/orgquery/orgquery/orgquery/storage/sqlbuilder"
)

// Result carries the rows of an executed plan plus the SQL that produced
// them, for explain output.
type Result struct {
	SQL     string
	Args    []any
	Columns []string
	Rows    []map[string]any
	Notes   []string
}

// Run lowers the plan for the given dialect and placeholder style and
// executes it. Row values are normalized: []byte becomes string and
// time.Time becomes an ISO date string.
func Run(ctx context.Context, db *sql.DB, dialect storage.Dialect, style sqlbuilder.PlaceholderStyle, p *plan.Plan) (*Result, error) {
	q, err := planner.BuildSQL(p, dialect, style)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, orgquery.Wrap(orgquery.ErrSQL, "query failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, orgquery.Wrap(orgquery.ErrSQL, "reading result columns", err)
	}

	res := &Result{
		SQL:     q.SQL,
		Args:    q.Args,
		Columns: cols,
		Rows:    make([]map[string]any, 0),
		Notes:   p.Notes,
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, orgquery.Wrap(orgquery.ErrSQL, "scanning row", err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = normalizeValue(vals[i])
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, orgquery.Wrap(orgquery.ErrSQL, "iterating rows", err)
	}
	return res, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return v
	}
}
