// main is the entry point of the pivotrend CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/pivotrend/cmd"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "profiling:", stopErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
