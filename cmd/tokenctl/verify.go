package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trustworkers/api/pkg/jwt"
)

func verifyCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Verify a token and print its principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, verifier, err := keys(load)
			if err != nil {
				return err
			}

			principal, err := verifier.Verify(args[0])
			if err != nil {
				return fmt.Errorf("token rejected (%s): %w", jwt.Reason(err), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(principal)
		},
	}
}
