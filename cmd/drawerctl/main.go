// Command drawerctl reconciles drawer counts from the terminal.
package main

import (
	"cashdrawer/internal/cli"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.Version = version
	cli.Execute(cli.NewRootCommand())
}
