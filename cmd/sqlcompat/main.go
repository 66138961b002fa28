// Command sqlcompat rewrites sqlc-style queries and runs them through the sqlcompat
// connection against PostgreSQL (pgx or lib/pq) or SQLite.
package main

import (
	"fmt"
	"os"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCommand(loadSettings).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
