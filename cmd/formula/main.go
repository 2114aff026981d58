// main is the entry point for the formula CLI.
package main

import (
	"fmt"
	"os"

	"github.com/assiskamu/formula-menang/cmd"
)

func main() {
	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Warning:", profErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
