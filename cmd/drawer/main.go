// Command drawer serves the cash drawer reconciliation web form.
package main

import (
	"context"
	"fmt"
	"os"

	"cashdrawer/internal/cli"
)

func main() {
	if err := cli.Serve(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
