package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type issueFlags struct {
	userID     int64
	email      string
	outputJSON bool
}

func issueCmd(load loadFunc) *cobra.Command {
	var flags issueFlags
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a token for a user",
		Long:  `Issue signs a bearer token for the given user with the configured JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.userID <= 0 {
				return errors.New("--user-id must be a positive integer")
			}
			if flags.email == "" {
				return errors.New("--email is required")
			}

			issuer, _, err := keys(load)
			if err != nil {
				return err
			}
			token, err := issuer.Issue(flags.userID, flags.email)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			out := cmd.OutOrStdout()
			if flags.outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"token":      token,
					"token_type": "Bearer",
					"expires_in": int64(issuer.TTL() / time.Second),
					"user_id":    flags.userID,
					"email":      flags.email,
				})
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}

	fs := cmd.Flags()
	fs.Int64Var(&flags.userID, "user-id", 0, "user id to put in the token")
	fs.StringVar(&flags.email, "email", "", "email to put in the token")
	fs.BoolVar(&flags.outputJSON, "json", false, "print a JSON auth payload instead of the bare token")

	return cmd
}
