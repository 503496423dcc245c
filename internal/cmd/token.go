package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gocentral/gocentral/internal/output"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the OAuth token pair",
}

var tokenRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a token refresh and persist the new pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		token, err := client.RefreshToken(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Access token refreshed, expires in %ds\n", token.ExpiresIn)
		return nil
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cached token pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		token := client.Token
		if token == nil && client.Store != nil {
			token, err = client.Store.Load(cmd.Context())
			if err != nil {
				return err
			}
		}
		if token == nil {
			return fmt.Errorf("no token cached; run %q first", "gocentral token refresh")
		}

		rendered, err := output.RenderJSON(token)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenRefreshCmd)
	tokenCmd.AddCommand(tokenShowCmd)
}
