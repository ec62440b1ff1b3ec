package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/orgquery/orgquery/internal/cliopt"
	"github.com/orgquery/orgquery/internal/cliutil"
	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/compiler"
	"github.com/orgquery/orgquery/orgquery/ops"
	"github.com/orgquery/orgquery/orgquery/plan"
)

// RunStats shows store identity and row counts, or, with --by, a grouped
// distinct count compiled through the regular query pipeline.
func RunStats(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var store, entity, by string
	fs.StringVar(&store, "store", "", "store name or path")
	fs.StringVar(&store, "s", "", "store name or path")
	fs.StringVar(&entity, "entity", "employees", "entity: employees|timeoff")
	fs.StringVar(&by, "by", "", "group counts by this column")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if store == "" {
		fmt.Fprintln(os.Stderr, "missing --store")
		return 2
	}

	ctx := context.Background()
	a := cliutil.NewAdapter(g, store)
	db, err := a.Connect(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer db.Close()

	storeID, err := a.OpenStore(ctx, db)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if by != "" {
		var p *plan.Plan
		switch entity {
		case "timeoff", "time_off":
			p, err = compiler.CompileTimeOff(orgquery.TimeOffIntent{
				Window:        orgquery.WindowPresent,
				SelectColumns: []string{by},
				ReturnAsCount: true,
				CountSortDesc: true,
			}, time.Now())
		default:
			p, err = compiler.CompileEmployee(orgquery.EmployeeIntent{
				SelectColumns: []string{by},
				ReturnAsCount: true,
				CountSortDesc: true,
			}, time.Now())
		}
		if err != nil {
			printCompileError(err)
			return 1
		}
		res, err := ops.Run(ctx, db, a.Dialect(), a.PlaceholderStyle(), p)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		printResult(g, p, res)
		return 0
	}

	sqlt := a.SQL()
	var employees, timeOff int64
	if err := db.QueryRowContext(ctx, sqlt.CountEmployees).Scan(&employees); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := db.QueryRowContext(ctx, sqlt.CountTimeOff).Scan(&timeOff); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, map[string]any{
			"store_id":  storeID,
			"backend":   a.Backend(),
			"employees": employees,
			"time_off":  timeOff,
		})
		return 0
	}
	fmt.Fprintf(os.Stdout, "store:     %s\n", storeID)
	fmt.Fprintf(os.Stdout, "backend:   %s\n", a.Backend())
	fmt.Fprintf(os.Stdout, "employees: %d\n", employees)
	fmt.Fprintf(os.Stdout, "time off:  %d\n", timeOff)
	return 0
}
