// main is the entry point for the ceaplens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ceaplens/ceaplens/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.CloseStore()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
