// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davetashner/seen/internal/config"
	"github.com/davetashner/seen/internal/redact"
)

// Config command flags.
var configGlobal bool

// configCmd is the parent command for config subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and modify seen configuration",
	Long: `View and modify seen configuration.

Seen reads configuration from .seen.yaml in the current directory.
A global config at ~/.config/seen/config.yaml provides defaults.
Local settings override global settings; SEEN_* environment variables
and command-line flags override both.

Note: config set does a YAML round-trip and will not preserve comments.
If you need to keep comments, edit the file directly.`,
}

// configGetCmd retrieves a configuration value by dot-notation key path.
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by dot-notation key path.

Examples:
  seen config get retention
  seen config get backend.kind
  seen config get backend
  seen config get --global similarity`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Values are auto-detected as bool, int, or string.
By default, writes to .seen.yaml in the current directory.
Use --global to write to ~/.config/seen/config.yaml.

Note: This does a YAML round-trip and will not preserve comments.

Examples:
  seen config set retention 7d
  seen config set similarity high
  seen config set min_length 20
  seen config set backend.kind sqlite
  seen config set --global scope global`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

// configListCmd lists all configuration values with their source.
var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Long: `List all configuration values with their source annotation.

Shows every set configuration value, annotated with whether it comes
from the local config (.seen.yaml) or global config
(~/.config/seen/config.yaml). Local values override global values.`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

func init() {
	configGetCmd.Flags().BoolVar(&configGlobal, "global", false, "use global config (~/.config/seen/config.yaml)")
	configSetCmd.Flags().BoolVar(&configGlobal, "global", false, "write to global config (~/.config/seen/config.yaml)")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
}

// resetConfigFlags resets config command flags for testing.
func resetConfigFlags() {
	configGlobal = false
	if f := configGetCmd.Flags().Lookup("global"); f != nil {
		_ = f.Value.Set("false")
	}
	if f := configSetCmd.Flags().Lookup("global"); f != nil {
		_ = f.Value.Set("false")
	}
}

// localConfigPath is the file config set writes and config get reads
// besides the global one.
func localConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(".", config.FileName)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]

	var cfg *config.Config
	var err error

	if configGlobal {
		cfg, err = config.LoadGlobal()
		if err != nil {
			return fmt.Errorf("loading global config: %w", err)
		}
	} else {
		localCfg, localErr := config.LoadFile(localConfigPath())
		if localErr != nil {
			return fmt.Errorf("loading config: %w", localErr)
		}
		globalCfg, globalErr := config.LoadGlobal()
		if globalErr != nil {
			return fmt.Errorf("loading global config: %w", globalErr)
		}
		cfg = config.Merge(globalCfg, localCfg)
	}

	val, err := config.GetValue(cfg, keyPath)
	if err != nil {
		return err
	}

	return printValue(cmd, val)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	keyPath := args[0]
	rawValue := args[1]

	if err := config.ValidateKeyPath(keyPath); err != nil {
		return err
	}

	targetPath := localConfigPath()
	if configGlobal {
		targetPath = config.GlobalConfigPath()
	}

	data, err := config.LoadRaw(targetPath)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	if err := config.SetValue(data, keyPath, rawValue); err != nil {
		return fmt.Errorf("setting value: %w", err)
	}

	// Round-trip validate: unmarshal to Config and validate.
	roundTrip, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	var validCfg config.Config
	if err := yaml.Unmarshal(roundTrip, &validCfg); err != nil {
		return fmt.Errorf("invalid config after set: %w", err)
	}
	if err := config.Validate(&validCfg); err != nil {
		return err
	}

	if err := config.WriteFile(targetPath, data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if keyPath == "backend.redis_password" {
		redact.Register(rawValue)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", keyPath, redact.String(rawValue))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	globalCfg, err := config.LoadGlobal()
	if err != nil {
		return fmt.Errorf("loading global config: %w", err)
	}
	localCfg, err := config.LoadFile(localConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	globalMap, err := configToFlatMap(globalCfg)
	if err != nil {
		return err
	}
	localMap, err := configToFlatMap(localCfg)
	if err != nil {
		return err
	}

	// Merge: local overrides global, track source.
	type entry struct {
		value  any
		source string
	}

	entries := make(map[string]entry)
	for k, v := range globalMap {
		entries[k] = entry{value: v, source: "global"}
	}
	for k, v := range localMap {
		entries[k] = entry{value: v, source: "local"}
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No configuration set.")
		_, _ = fmt.Fprintln(w, "Run 'seen config set <key> <value>' to set values.")
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	globalColor := color.New(color.FgCyan)
	localColor := color.New(color.FgGreen)

	for _, k := range keys {
		e := entries[k]
		value := fmt.Sprint(e.value)
		if k == "backend.redis_password" {
			value = "[REDACTED]"
		}
		_, _ = fmt.Fprintf(w, "%s = %s %s\n", k, value, formatSource(e.source, globalColor, localColor))
	}

	return nil
}

// printValue outputs a value: scalars as plain text, maps/slices as YAML.
func printValue(cmd *cobra.Command, val any) error {
	switch v := val.(type) {
	case map[string]any, []any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), redact.String(string(data)))
	default:
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), redact.String(fmt.Sprint(v)))
	}
	return nil
}

// configToFlatMap converts a Config to a flat dot-notation map, omitting zero values.
func configToFlatMap(cfg *config.Config) (map[string]any, error) {
	m, err := config.ToMap(cfg)
	if err != nil {
		return nil, err
	}
	return config.FlattenMap(m, ""), nil
}

// formatSource returns a colorized source annotation.
func formatSource(source string, globalColor, localColor *color.Color) string {
	switch source {
	case "global":
		return globalColor.Sprintf("(global)")
	case "local":
		return localColor.Sprintf("(local)")
	default:
		return fmt.Sprintf("(%s)", source)
	}
}
