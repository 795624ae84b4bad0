package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cashdrawer/internal/core"
)

type denominationJSON struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

func newDenominationsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "denominations",
		Short: "List the VND denominations that can be counted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := core.Denominations()
			if root.jsonOutput {
				out := make([]denominationJSON, len(catalog))
				for i, d := range catalog {
					out[i] = denominationJSON{Value: int64(d.Value), Label: d.Label}
				}
				return writeJSON(cmd.OutOrStdout(), map[string]any{"denominations": out})
			}
			for _, d := range catalog {
				fmt.Fprintf(cmd.OutOrStdout(), "%7d  %s\n", d.Value, d.Label)
			}
			return nil
		},
	}
}
