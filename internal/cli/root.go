package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is injected by cmd/drawerctl at build time.
var Version = "dev"

// rootOptions holds the persistent flags every subcommand reads.
type rootOptions struct {
	jsonOutput bool
}

// NewRootCommand creates the drawerctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "drawerctl",
		Short: "Reconcile a counted VND cash drawer against the register",
		Long: `drawerctl counts notes per VND denomination, totals them and compares
the total with the amount the register expects.

Counts come from a YAML count sheet, --qty flags, or both. The web form
is started with "drawerctl serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(newCountCommand(opts))
	rootCmd.AddCommand(newDenominationsCommand(opts))
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// Execute runs the command tree and exits non-zero on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err, flagJSON(rootCmd))
		os.Exit(1)
	}
}

func flagJSON(cmd *cobra.Command) bool {
	v, err := cmd.PersistentFlags().GetBool("json")
	return err == nil && v
}

// printError writes err to w as text or as {"error": {"message": ...}}.
func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		data, _ := json.MarshalIndent(map[string]any{
			"error": map[string]string{"message": err.Error()},
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
