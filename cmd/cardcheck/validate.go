package main

import (
	"encoding/json"
	"errors"
	"fmt"

	creditcard "ccentry/internal/services/credit-card"

	"github.com/spf13/cobra"
)

var errCardInvalid = errors.New("card is not valid")

type validateResult struct {
	Brand           string                      `json:"brand"`
	FormattedNumber string                      `json:"formatted_number"`
	Valid           bool                        `json:"valid"`
	Fields          map[string]creditcard.State `json:"fields"`
}

func (c *cli) newValidateCmd() *cobra.Command {
	var (
		in     creditcard.Input
		noZip  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a complete set of card fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.IncludeZip = c.v.GetBool("form.include_zip") && !noZip
			check := creditcard.Evaluate(in, now())

			res := validateResult{
				Brand:           check.Brand.Code,
				FormattedNumber: check.FormattedNumber,
				Valid:           check.Valid(),
				Fields: map[string]creditcard.State{
					"number":        check.Number,
					"expiration":    check.Expiration,
					"security_code": check.SecurityCode,
				},
			}
			if check.PostalCodeEnabled {
				res.Fields["postal_code"] = check.PostalCode
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "brand:         %s\n", res.Brand)
				fmt.Fprintf(out, "number:        %s (%s)\n", res.FormattedNumber, check.Number)
				fmt.Fprintf(out, "expiration:    %s\n", check.Expiration)
				fmt.Fprintf(out, "security code: %s\n", check.SecurityCode)
				if check.PostalCodeEnabled {
					fmt.Fprintf(out, "postal code:   %s\n", check.PostalCode)
				}
				fmt.Fprintf(out, "valid:         %t\n", res.Valid)
			}

			if !res.Valid {
				return errCardInvalid
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&in.CardNumber, "number", "", "card number")
	cmd.Flags().StringVar(&in.Expiration, "exp", "", "expiration date (MM/YY)")
	cmd.Flags().StringVar(&in.SecurityCode, "cvc", "", "security code")
	cmd.Flags().StringVar(&in.PostalCode, "zip", "", "billing postal code")
	cmd.Flags().BoolVar(&noZip, "no-zip", false, "do not require a postal code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}
