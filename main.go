// feeddate recognizes the date encodings used by RSS, Atom and JSON feeds.
package main

import (
	"fmt"
	"os"

	"github.com/jparise/feeddate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
