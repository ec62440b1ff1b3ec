package cliopt

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
)

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend     string
	SQLitePath  string
	PostgresDSN string
	PGSchema    string

	Format  string
	Explain bool
}

// DefaultGlobalOptions builds the defaults, overlaid with ORGQUERY_*
// environment variables. A .env file in the working directory is loaded
// first so local setups do not need exported variables.
func DefaultGlobalOptions() GlobalOptions {
	_ = godotenv.Load()

	g := GlobalOptions{
		Backend:    "sqlite",
		SQLitePath: ".",
		PGSchema:   "orgquery",
		Format:     "pretty",
	}
	if v := os.Getenv("ORGQUERY_BACKEND"); v != "" {
		g.Backend = v
	}
	if v := os.Getenv("ORGQUERY_SQLITE_PATH"); v != "" {
		g.SQLitePath = v
	}
	if v := os.Getenv("ORGQUERY_PG_DSN"); v != "" {
		g.PostgresDSN = v
	}
	if v := os.Getenv("ORGQUERY_PG_SCHEMA"); v != "" {
		g.PGSchema = v
	}
	if v := os.Getenv("ORGQUERY_FORMAT"); v != "" {
		g.Format = v
	}
	return g
}

func BindGlobalFlags(fs *flag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite directory or explicit .db file path")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PGSchema, "pg-schema", g.PGSchema, "postgres schema name")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.BoolVar(&g.Explain, "explain", g.Explain, "print the compiled plan and SQL")
}
