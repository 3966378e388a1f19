package main

import (
	"errors"
	"fmt"

	"ccentry/internal/utils"

	"github.com/spf13/cobra"
)

func (c *cli) newTokenCmd() *cobra.Command {
	var (
		clientID string
		scopes   []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API client token",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := c.v.GetString("jwt.secret")
			if secret == "" {
				return errors.New("jwt secret is not set (JWT_SECRET or jwt.secret)")
			}
			token, err := utils.GenerateClientToken(
				secret,
				c.v.GetString("jwt.issuer"),
				clientID,
				scopes,
				c.v.GetDuration("jwt.ttl"),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client id")
	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "scopes to grant (default all)")
	cmd.Flags().Duration("ttl", 0, "token lifetime")
	_ = c.v.BindPFlag("jwt.ttl", cmd.Flags().Lookup("ttl"))
	_ = cmd.MarkFlagRequired("client")
	return cmd
}
