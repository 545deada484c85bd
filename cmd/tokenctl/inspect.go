package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustworkers/api/pkg/jwt"
)

// inspectCmd decodes a token without checking its signature
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Decode a token without verifying it",
		Long:  `Inspect prints the header and claims of a token. Nothing is verified; do not trust the output.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, claims, err := jwt.Decode(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"header":  header,
				"claims":  claims,
				"expired": claims.Expired(time.Now()),
			})
		},
	}
}
