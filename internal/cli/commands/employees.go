package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/orgquery/orgquery/internal/cliopt"
	"github.com/orgquery/orgquery/orgquery"
	"github.com/orgquery/orgquery/orgquery/compiler"
	"github.com/orgquery/orgquery/orgquery/ops"
)

func RunEmployees(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("employees", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var store, intentRaw string
	fs.StringVar(&store, "store", "", "store name or path")
	fs.StringVar(&store, "s", "", "store name or path")
	fs.StringVar(&intentRaw, "intent", "", "intent JSON ('-' reads stdin)")
	fs.StringVar(&intentRaw, "q", "", "intent JSON")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	if store == "" || intentRaw == "" {
		fmt.Fprintln(os.Stderr, "missing --store or --intent")
		return 2
	}

	var in orgquery.EmployeeIntent
	if err := readIntent(intentRaw, &in); err != nil {
		fmt.Fprintf(os.Stderr, "invalid intent: %v\n", err)
		return 2
	}

	p, err := compiler.CompileEmployee(in, time.Now())
	if err != nil {
		printCompileError(err)
		return 1
	}

	ctx := context.Background()
	db, a, err := openStore(ctx, g, store)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer db.Close()

	res, err := ops.Run(ctx, db, a.Dialect(), a.PlaceholderStyle(), p)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printResult(g, p, res)
	return 0
}

// printCompileError surfaces the stage and partial plan the compilers
// attach to their errors.
func printCompileError(err error) {
	fmt.Fprintln(os.Stderr, err)
	var oe *orgquery.Error
	if errors.As(err, &oe) && oe.Plan != "" {
		fmt.Fprintln(os.Stderr, "plan so far:")
		fmt.Fprint(os.Stderr, oe.Plan)
	}
}
