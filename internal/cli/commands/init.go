package commands

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/orgquery/orgquery/internal/cliopt"
	"github.com/orgquery/orgquery/internal/cliutil"
	"github.com/orgquery/orgquery/orgquery/seed"
)

func RunInit(g cliopt.GlobalOptions, argv []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var store, profilePath string
	var noSeed bool
	fs.StringVar(&store, "store", "", "store name or path")
	fs.StringVar(&store, "s", "", "store name or path")
	fs.StringVar(&profilePath, "profile", "", "seed profile YAML file")
	fs.BoolVar(&noSeed, "no-seed", false, "create an empty store")
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

	storeID := uuid.NewString()
	if err := a.CreateStore(ctx, db, storeID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "created store %s (%s backend)\n", storeID, a.Backend())

	if noSeed {
		return 0
	}

	profile := seed.DefaultProfile()
	if profilePath != "" {
		profile, err = seed.LoadProfile(profilePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	ds := seed.Generate(profile)
	if err := seed.Insert(ctx, db, a.SQL(), ds); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "seeded %d employees, %d time-off records\n",
		len(ds.Employees), len(ds.TimeOff))
	return 0
}
