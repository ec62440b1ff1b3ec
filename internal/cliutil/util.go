package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/orgquery/orgquery/internal/cliopt"
	"github.com/orgquery/orgquery/orgquery/storage"
	"github.com/orgquery/orgquery/orgquery/storage/postgres"
	"github.com/orgquery/orgquery/orgquery/storage/sqlite"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// ResolveStorePath transforms the user-provided -store value into a
// backend-specific reference. For sqlite a bare name becomes a .db file
// under the configured directory.
func ResolveStorePath(g cliopt.GlobalOptions, store string) string {
	switch strings.ToLower(g.Backend) {
	case "sqlite":
		if strings.Contains(store, string(filepath.Separator)) || strings.HasSuffix(store, ".db") {
			return store
		}
		return filepath.Join(g.SQLitePath, store+".db")
	default:
		return store
	}
}

// NewAdapter builds the storage adapter selected by the global options.
func NewAdapter(g cliopt.GlobalOptions, store string) storage.Adapter {
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		dsn := g.PostgresDSN
		if dsn == "" {
			dsn = store
		}
		return postgres.New(dsn, g.PGSchema)
	default:
		return sqlite.New(ResolveStorePath(g, store))
	}
}
