package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cashdrawer/internal/core"
	"cashdrawer/internal/countsheet"
	"cashdrawer/internal/drawer"
)

type countFlags struct {
	sheet    string
	qty      []string
	register string
}

func newCountCommand(root *rootOptions) *cobra.Command {
	flags := &countFlags{}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Total a drawer count and compare it with the register amount",
		Long: `Total a drawer count and compare it with the register amount.

Quantities from --qty override the same denomination in --sheet, and
--register overrides the sheet's register amount. Inputs are coerced the
same way the web form does: negative or non-numeric quantities count as 0
and every non-digit in the register amount is ignored.

Examples:
  drawerctl count --qty 100000=1 --qty 5000=1 --register 110.000
  drawerctl count --sheet closing.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := runCount(flags, cmd.Flags().Changed("register"))
			if err != nil {
				return err
			}
			if root.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), snap.Summary())
			}
			printCountText(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.sheet, "sheet", "f", "", "YAML count sheet")
	cmd.Flags().StringArrayVarP(&flags.qty, "qty", "q", nil, "Quantity as VALUE=QUANTITY, repeatable")
	cmd.Flags().StringVarP(&flags.register, "register", "r", "", "Register amount, e.g. 1.500.000")

	return cmd
}

func runCount(flags *countFlags, registerSet bool) (drawer.Snapshot, error) {
	sheet := &countsheet.Sheet{}
	if flags.sheet != "" {
		loaded, err := countsheet.Load(flags.sheet)
		if err != nil {
			return drawer.Snapshot{}, err
		}
		sheet = loaded
	}
	for _, q := range flags.qty {
		if err := sheet.Set(q); err != nil {
			return drawer.Snapshot{}, err
		}
	}
	if registerSet {
		sheet.Register = flags.register
	}

	e := drawer.New()
	if err := sheet.Apply(e); err != nil {
		return drawer.Snapshot{}, err
	}
	return e.Snapshot(), nil
}

// printCountText renders only the denominations that were counted.
//
//	DENOMINATION   QTY  SUBTOTAL
//	100,000 ₫        1  100.000 ₫
//	5,000 ₫          1  5.000 ₫
func printCountText(w io.Writer, snap drawer.Snapshot) {
	fmt.Fprintf(w, "%-14s %5s  %s\n", "DENOMINATION", "QTY", "SUBTOTAL")
	for i := len(snap.Rows) - 1; i >= 0; i-- {
		r := snap.Rows[i]
		if r.Quantity == 0 {
			continue
		}
		fmt.Fprintf(w, "%-14s %5d  %s\n", r.Denomination.Label, r.Quantity, core.FormatVND(r.Subtotal))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total:    %s (%d notes)\n", snap.Result.FormattedTotal(), snap.Result.TotalNotes)
	if snap.TargetDisplay != "" {
		fmt.Fprintf(w, "Register: %s %s\n", snap.TargetDisplay, core.CurrencySymbol)
	}
	fmt.Fprintf(w, "Status:   %s\n", snap.Result.Message())
}
