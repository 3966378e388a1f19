package main

import (
	"fmt"
	"text/tabwriter"

	creditcard "ccentry/internal/services/credit-card"

	"github.com/spf13/cobra"
)

func (c *cli) newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <number>...",
		Short: "Detect the brand of one or more card numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BRAND\tNUMBER\tSTATE\tLUHN")
			for _, arg := range args {
				digits := creditcard.Digits(arg)
				brand := creditcard.Classify(digits)
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n",
					brand.Code,
					creditcard.FormatNumber(digits, brand),
					creditcard.NumberState(digits, brand),
					creditcard.Luhn(digits),
				)
			}
			return w.Flush()
		},
	}
}
