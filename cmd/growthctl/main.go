// Command growthctl runs the growth prediction engine over a JSON or YAML
// input document, without a database or server.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
