// Command rdbsnap decodes RDB snapshots, either dumping them as JSON/plain
// text or replaying them into a live Redis or Dragonfly server.
package main

import (
	"os"

	"rdbsnap/internal/cli"
)

func main() {
	code := cli.Execute(os.Args[1:])
	os.Exit(code)
}
