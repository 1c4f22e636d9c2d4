// Command driftgif inspects, renders and plays animated GIFs.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/driftgif/cmd/driftgif/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
