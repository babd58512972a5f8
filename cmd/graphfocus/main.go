// Command graphfocus draws directed graphs and explores them by hovering
// and selecting nodes: as a self-contained D3 page, a static SVG snapshot,
// a terminal explorer, or an HTTP service.
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
