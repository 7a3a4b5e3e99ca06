package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumina/internal/auth"
)

var tokenFormat string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API bearer token",
	Long: `Generate the bearer token that guards POST /analyze and POST /chat.

Only the bcrypt hash goes into the config:
  [auth]
  enabled = true
  tokenHash = "<hash>"`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token and its hash",
	Long: `Generate a new random token. The token is shown once; store the hash under
auth.tokenHash (or LUMINA_AUTH_TOKENHASH) and hand the token to clients.

Examples:
  lumina token generate
  lumina token generate --format json`,
	Args: cobra.NoArgs,
	RunE: runTokenGenerate,
}

func init() {
	tokenGenerateCmd.Flags().StringVar(&tokenFormat, "format", "human", "Output format (json, yaml, human)")
	tokenCmd.AddCommand(tokenGenerateCmd)
	rootCmd.AddCommand(tokenCmd)
}

// TokenOutput is printed by token generate
type TokenOutput struct {
	Token string `json:"token"`
	Hash  string `json:"hash"`
}

func runTokenGenerate(cmd *cobra.Command, args []string) error {
	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}
	hash, err := auth.HashToken(token)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if OutputFormat(tokenFormat) == FormatHuman {
		fmt.Fprintln(out, "Token (shown once, give it to clients):")
		fmt.Fprintf(out, "  %s\n\n", token)
		fmt.Fprintln(out, "Hash (store as auth.tokenHash):")
		fmt.Fprintf(out, "  %s\n", hash)
		return nil
	}

	text, err := FormatResponse(&TokenOutput{Token: token, Hash: hash}, OutputFormat(tokenFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, text)
	return nil
}
