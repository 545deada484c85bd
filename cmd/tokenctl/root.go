package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/trustworkers/api/internal/config"
	"github.com/trustworkers/api/pkg/jwt"
)

type loadFunc func() (*config.Config, error)

func newRootCmd(load loadFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "tokenctl",
		Short:         "Issue, verify and inspect Trust Workers API tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		issueCmd(load),
		verifyCmd(load),
		inspectCmd(),
	)
	return root
}

// keys builds an issuer and verifier from the loaded JWT configuration
func keys(load loadFunc) (*jwt.Issuer, *jwt.Verifier, error) {
	cfg, err := load()
	if err != nil {
		return nil, nil, err
	}

	signer, err := jwt.NewSigner([]byte(cfg.JWT.Secret.Reveal()), jwt.WithKeyID(cfg.JWT.KeyID))
	if err != nil {
		return nil, nil, err
	}
	issuer := jwt.NewIssuer(signer,
		jwt.WithIssuerIdentity(cfg.JWT.Issuer, cfg.JWT.Audience),
		jwt.WithTokenIDs(uuid.NewString),
	)
	verifier := jwt.NewVerifier(signer, jwt.WithVerifierIdentity(cfg.JWT.Issuer, cfg.JWT.Audience))
	return issuer, verifier, nil
}
