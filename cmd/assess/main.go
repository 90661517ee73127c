// Command assess evaluates questionnaires from the command line and applies database
// migrations without starting the API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
