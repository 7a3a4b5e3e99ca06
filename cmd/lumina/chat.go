package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	chatFormat    string
	chatListRules bool
)

var chatCmd = &cobra.Command{
	Use:   "chat <message...>",
	Short: "Ask the code quality assistant",
	Long: `Answer a question from the canned keyword rules, the same way POST /chat does.
Set chat.rulesFile to replace the built-in rules with a TOML file.

Examples:
  lumina chat what is a god class
  lumina chat "how do I prevent sql injection?" --format json
  lumina chat --list-rules`,
	Args: func(cmd *cobra.Command, args []string) error {
		if chatListRules {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatFormat, "format", "human", "Output format (json, yaml, human)")
	chatCmd.Flags().BoolVar(&chatListRules, "list-rules", false, "List the active rules in priority order")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	responder, err := newResponder(cfg)
	if err != nil {
		return err
	}

	if chatListRules {
		out, err := FormatResponse(&RulesOutput{Rules: responder.Rules()}, OutputFormat(chatFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	response, rule := responder.Respond(strings.Join(args, " "))

	out, err := FormatResponse(&ChatOutput{Response: response, Rule: rule}, OutputFormat(chatFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
