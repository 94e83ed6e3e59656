// Command locationctl inspects the location catalogs and runs the resolve,
// parse and compose operations from the command line.
package main

import (
	"os"

	"github.com/couchcryptid/farm-location-etl/cmd/locationctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
