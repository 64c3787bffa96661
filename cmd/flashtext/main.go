// flashtext finds and replaces keywords in text in a single pass.
// Dictionaries live per project under .flashtext/; a daemon keeps one hot.
package main

import (
	"os"

	"github.com/corey/flashtext/cmd/flashtext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
