package main

import (
	"fmt"
	"io"

	"ccentry/internal/observability"
	creditcard "ccentry/internal/services/credit-card"
	"ccentry/internal/services/entry"

	"github.com/spf13/cobra"
)

// printObserver writes each notification as it happens.
type printObserver struct {
	out io.Writer
}

func (p printObserver) ValidityChanged(valid bool) {
	fmt.Fprintf(p.out, "  -> card valid: %t\n", valid)
}

func (p printObserver) BrandChanged(brand creditcard.Brand) {
	fmt.Fprintf(p.out, "  -> brand: %s\n", brand.Name)
}

func (p printObserver) FocusRequested(field entry.Field, reason entry.FocusReason) {
	fmt.Fprintf(p.out, "  -> focus %s (%s)\n", field, reason)
}

func (c *cli) newSimulateCmd() *cobra.Command {
	var quietHelper bool

	cmd := &cobra.Command{
		Use:   "simulate <number> <exp> <cvc> [zip]",
		Short: "Type card fields into a form one key at a time",
		Long: "Feeds each argument into the focused field character by character, " +
			"printing brand changes, focus moves and validity changes. The postal " +
			"code field is enabled only when a zip argument is given.",
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := entry.DefaultConfig()
			cfg.IncludeZip = len(args) == 4
			cfg.IncludeHelper = c.v.GetBool("form.include_helper")

			form := entry.New(cfg,
				entry.WithClock(now),
				entry.WithLogger(observability.GetLogger()),
				entry.WithObserver(printObserver{out: out}),
			)

			fields := []entry.Field{entry.FieldNumber, entry.FieldExpiration, entry.FieldSecurityCode, entry.FieldPostalCode}
			for i, text := range args {
				field := fields[i]
				if form.Focused() != field {
					form.Focus(field)
				}
				fmt.Fprintf(out, "%s:\n", field)
				for _, r := range text {
					display := form.SetText(field, form.Text(field)+string(r))
					fmt.Fprintf(out, "  %q -> %q [%s]\n", string(r), display, form.State(field))
				}
				if help := form.HelperText(); help != "" && !quietHelper {
					fmt.Fprintf(out, "  helper: %s\n", help)
				}
			}

			fmt.Fprintf(out, "valid: %t\n", form.IsCreditCardValid())
			if form.IsCreditCardValid() {
				card := form.CreditCard()
				fmt.Fprintf(out, "card: %s %s exp %s\n", card.Brand.Name, card.Masked(), card.Expiration)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&quietHelper, "quiet-helper", false, "do not print helper text")
	return cmd
}
