package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `orgquery - HR roster and time-off query engine

USAGE
  orgquery [global flags] <command> [args]

GLOBAL FLAGS
  --backend sqlite|postgres
  --sqlite-path <dir|file.db>
  --pg-dsn <dsn>
  --pg-schema <name>
  --format pretty|json
  --explain

COMMANDS
  init       create a store and optionally seed demo data
  employees  query employee profiles with a JSON intent
  timeoff    query time-off records with a JSON intent
  stats      show store id and row counts

Intents are JSON documents; pass them with --intent '<json>' or
--intent - to read from stdin. Defaults come from ORGQUERY_* environment
variables (a .env file is honored).

Run "orgquery <command> --help" for details.`)
}
