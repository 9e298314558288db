// linescan - report where snippets appear in a text or HTML file.
//
// linescan reads a file line by line and prints the line numbers of lines
// containing configured substrings, optionally with a block of context.
package main

import (
	"os"

	"github.com/ccollicutt/linescan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
