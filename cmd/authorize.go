package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jwrobel/shiftcal/internal/auth"
	"github.com/jwrobel/shiftcal/internal/config"
)

func newAuthorizeCmd() *cobra.Command {
	var (
		credentialsPath string
		tokenPath       string
		force           bool
	)

	cmd := &cobra.Command{
		Use:   "authorize",
		Short: "Run the OAuth consent flow and cache the token",
		Long: `Runs the interactive OAuth 2.0 consent flow and caches the resulting
token, so that later sync runs don't prompt. Does nothing if a token
is already cached (use --force to re-authorize).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile, credentialsPath, tokenPath, "", "")
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.ServiceAccountPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), "A service account is configured; no authorization needed.")
				return nil
			}

			tokenStore := auth.NewFileTokenStore(cfg.TokenPath)

			if !force {
				cached, err := auth.HasToken(tokenStore)
				if err != nil {
					return fmt.Errorf("failed to check cached token: %w", err)
				}
				if cached {
					fmt.Fprintf(cmd.OutOrStdout(), "Token already cached at %s. Use --force to re-authorize.\n", cfg.TokenPath)
					return nil
				}
			} else {
				if err := os.Remove(cfg.TokenPath); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to remove cached token: %w", err)
				}
			}

			oauthConfig, err := oauthConfigFor(cfg)
			if err != nil {
				return err
			}

			if _, err := auth.GetAuthenticatedClient(cmd.Context(), oauthConfig, tokenStore); err != nil {
				return fmt.Errorf("authorization failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token cached at %s\n", cfg.TokenPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsPath, "credentials", "", "Path to the Google OAuth credentials JSON file")
	cmd.Flags().StringVar(&tokenPath, "token-path", "", "Path to the cached OAuth token file")
	cmd.Flags().BoolVar(&force, "force", false, "Re-run the consent flow even if a token is cached")

	return cmd
}
