package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brume-cli/brume/internal/auth"
	"github.com/brume-cli/brume/internal/config"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the bearer token used to authenticate against the remote",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token in the config file",
	Long: `login prompts for a bearer token (input is masked) and persists it to
the config file so subsequent commands don't need --token or
BEARER_TOKEN set. Paste the token copied from your remote account's
session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open("")
		if err != nil {
			return err
		}
		token, err := auth.PromptForToken("token: ")
		if err != nil {
			return err
		}
		if err := store.Set("auth.token", token); err != nil {
			return err
		}
		if err := store.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "token saved")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether a bearer token is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.Open("")
		if err != nil {
			return err
		}
		tokens := &auth.StaticTokenProvider{CLIToken: flagToken}
		if _, err := tokens.GetToken(cmd.Context()); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "token resolved from flag, environment, or session file")
			return nil
		}
		if t := store.GetString("auth.token"); t != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "token resolved from config file")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "no token configured; run `brume auth login`")
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
