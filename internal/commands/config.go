package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/config"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/tui"
)

// newConfigCmd creates the config command. Without a subcommand it opens
// the settings menu.
func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open the settings menu",
		Long:  `Interactive menu to configure captionthis settings.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.deps.ConfigPath()
			if err != nil {
				return err
			}
			_, source, keyErr := e.deps.Keys.Load()
			if keyErr != nil && !errors.Is(keyErr, apierrors.ErrMissingAPIKey) {
				e.log.WithError(keyErr).Warn("could not resolve API key")
			}

			_, err = e.deps.TUI.RunSettings(e.cfg, tui.SettingsInfo{ConfigPath: path, KeySource: source})
			return err
		},
	}

	cmd.AddCommand(newConfigShowCmd(e), newConfigPathCmd(e), newConfigSetCmd(e))
	return cmd
}

func newConfigShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.Marshal(e.cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), api.FormatJSON(data))
			return nil
		},
	}
}

func newConfigPathCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the path of config.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := e.deps.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigSetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  "Change one setting in config.json. Keys:\n  " + strings.Join(config.SettableKeys(), "\n  "),
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.SettableKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := e.deps.SaveConfig(cfg); err != nil {
				return err
			}
			e.cfg = cfg
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ %s set to %s", args[0], args[1])))
			return nil
		},
	}
}
