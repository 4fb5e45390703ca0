// The main package for the wikicrawl executable.
package main

import (
	"github.com/corpuskit/wikicrawl/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
