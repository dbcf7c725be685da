// Package main provides the CLI entrypoint for streamop-generator.
//
// streamop-generator reads resolved Thrift type descriptors and:
//   - Generates C++ print bindings (printTo members and operator<<)
//   - Renders value documents the way the generated bindings print them
//   - Checks descriptors and generator options
package main

import (
	"os"

	"streamop-generator/cmd/streamop-generator/commands"
)

func main() {
	os.Exit(commands.Execute())
}
