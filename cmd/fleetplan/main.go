// fleetplan - fleet capacity and spare-parts procurement planning
//
// Usage:
//
//	fleetplan --data-dir ./snapshot capacity --sector food --scenario optimistic
//	fleetplan --data-dir ./snapshot parts --region black-sea --cargo heavy
//	fleetplan --database-url postgres://... serve --listen :8080
package main

import (
	"fmt"
	"os"

	"github.com/fleetdesk/fleetplan/pkg/interfaces/cli/commands"
)

func main() {
	app := commands.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
