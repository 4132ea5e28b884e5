package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/config"
	apierrors "github.com/diogo/captionthis/internal/errors"
)

func newAuthCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the API key",
		Long: `The API key is read from the API_KEY environment variable, then from a
.env file in the working directory or one of its parents, then from the
system keyring.`,
	}
	cmd.AddCommand(newSetKeyCmd(e), newClearKeyCmd(), newAuthStatusCmd(e))
	return cmd
}

func newSetKeyCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key in the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := e.deps.Prompter.Password("API key:")
			if err != nil {
				return err
			}
			if err := config.SetAPIKey(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ API key saved to the system keyring ("+config.MaskKey(strings.TrimSpace(key))+")"))
			return nil
		},
	}
}

func newClearKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the API key from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearAPIKey(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ API key removed from the system keyring"))
			return nil
		},
	}
}

func newAuthStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show where the API key comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			key, source, err := e.deps.Keys.Load()
			if errors.Is(err, apierrors.ErrMissingAPIKey) {
				fmt.Fprintln(out, warnStyle.Render("✗ No API key configured"))
				fmt.Fprintln(out, dimStyle.Render("  Set API_KEY or run 'captionthis auth set-key'"))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, successStyle.Render("✓ API key found"))
			fmt.Fprintf(out, "  Source: %s\n", source)
			fmt.Fprintf(out, "  Key:    %s\n", config.MaskKey(key))
			return nil
		},
	}
}
