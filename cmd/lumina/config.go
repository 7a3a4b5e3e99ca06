package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"lumina/internal/config"
)

var (
	configFormat   string
	configShowDiff bool
	configForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Lumina configuration",
	Long:  "View and create the Lumina configuration stored in .lumina/config.{toml,json,yaml}",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to .lumina/config.toml.

Examples:
  lumina config init
  lumina config init --force   # Overwrite an existing file`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration after defaults, the config file and
LUMINA_* environment overrides have been merged.

Examples:
  lumina config show                 # Pretty-print current config
  lumina config show --format toml   # As a config file
  lumina config show --diff          # Only show non-default values`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (json, yaml, toml, human)")
	configShowCmd.Flags().BoolVar(&configShowDiff, "diff", false, "Only show non-default values")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path(rootDir)
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.DefaultConfig().Save(rootDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rootDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Never print the hash itself
	if cfg.Auth.TokenHash != "" {
		cfg.Auth.TokenHash = "****"
	}

	out := cmd.OutOrStdout()
	switch OutputFormat(configFormat) {
	case FormatHuman:
		return outputConfigHuman(out, cfg, configShowDiff)
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		text, err := FormatResponse(cfg, OutputFormat(configFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}
}

func outputConfigHuman(out io.Writer, cfg *config.Config, diffOnly bool) error {
	current, err := flattenConfig(cfg)
	if err != nil {
		return err
	}
	defaults, err := flattenConfig(config.DefaultConfig())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Lumina Configuration")
	fmt.Fprintln(out, strings.Repeat("─", 50))
	if diffOnly {
		fmt.Fprintln(out, "Modified Settings (differs from defaults):")
	}

	keys := make([]string, 0, len(current))
	for k := range current {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	section := ""
	printed := 0
	for _, key := range keys {
		value := current[key]
		def, hasDefault := defaults[key]
		modified := !hasDefault || def != value
		if diffOnly && !modified {
			continue
		}

		head, name, found := strings.Cut(key, ".")
		if !found {
			name = head
			head = ""
		}
		if head != section {
			if head != "" {
				fmt.Fprintf(out, "\n%s:\n", head)
			} else {
				fmt.Fprintln(out)
			}
			section = head
		}

		indent := ""
		if head != "" {
			indent = "  "
		}
		line := fmt.Sprintf("%s%s: %s", indent, name, value)
		if modified && hasDefault {
			line += fmt.Sprintf(" (default: %s)", def)
		}
		fmt.Fprintln(out, line)
		printed++
	}

	if diffOnly && printed == 0 {
		fmt.Fprintln(out, "\n(none)")
	}
	return nil
}

// flattenConfig renders cfg as dotted keys using its JSON field names.
func flattenConfig(cfg *config.Config) (map[string]string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var tree map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	flat := make(map[string]string)
	var walk func(prefix string, v interface{})
	walk = func(prefix string, v interface{}) {
		if m, ok := v.(map[string]interface{}); ok {
			for k, child := range m {
				key := k
				if prefix != "" {
					key = prefix + "." + k
				}
				walk(key, child)
			}
			return
		}
		flat[prefix] = fmt.Sprint(v)
	}
	walk("", tree)
	return flat, nil
}
