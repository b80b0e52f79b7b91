// Command pipelinectl builds reports and applies stage transitions against a
// JSON snapshot file, without a database.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
