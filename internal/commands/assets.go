package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/app"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/render"
)

// addJSONFlag registers --json on an asset command group
func addJSONFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("json", false, "Print the raw API response")
}

func jsonOutput(cmd *cobra.Command) bool {
	return lo.Must(cmd.Flags().GetBool("json"))
}

// addStyleFlag registers --style with completion
func addStyleFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("style", "s", "", "Caption style: short or detailed (default from config)")
	lo.Must0(cmd.RegisterFlagCompletionFunc("style", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(models.PromptStyles(), func(s models.PromptStyle, _ int) string { return s.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
}

// styleFor reads --style, falling back to the configured default
func (e *env) styleFor(cmd *cobra.Command) (models.PromptStyle, error) {
	name := lo.Must(cmd.Flags().GetString("style"))
	if name == "" {
		return e.cfg.Style(), nil
	}
	return models.ParsePromptStyle(name)
}

func newListCmd(e *env, kind models.AssetKind) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %ss in the library", kind),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := e.service()
			if err != nil {
				return err
			}

			spin := newSpinner(e.deps.Err, fmt.Sprintf("Fetching %ss", kind))
			spin.start()
			list, err := svc.ListAssets(cmd.Context(), kind)
			if err != nil {
				spin.stopWithError()
				return err
			}
			spin.stopWithSuccess(fmt.Sprintf("%d %s(s)", list.Len(), kind))

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) || !list.HasResults {
				fmt.Fprintln(out, api.FormatJSON(list.Raw))
				return nil
			}
			if list.Len() == 0 {
				fmt.Fprintf(out, "No %ss found.\n", kind)
				return nil
			}
			printAssets(out, list, terminalWidth(e.deps.Out))
			return nil
		},
	}
}

// printAssets prints the list as a table, truncating the last column to width
func printAssets(out io.Writer, list *models.AssetList, width int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if list.Kind == models.AssetImage {
		fmt.Fprintln(w, "ID\tURL")
		for _, r := range list.Records {
			id := lo.Ternary(r.ID == "", "N/A", r.ID)
			fmt.Fprintf(w, "%s\t%s\n", id, r.Locator)
		}
		return
	}

	nameWidth := uint(max(width-60, 16))
	fmt.Fprintln(w, "ID\tSTATUS\tNAME")
	for _, r := range list.Records {
		name := lo.Ternary(r.DisplayName == "", "N/A", r.DisplayName)
		status := lo.Ternary(r.Status == "", "-", r.Status)
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, status, truncate.StringWithTail(name, nameWidth, "…"))
	}
}

func newUploadCmd(e *env, kind models.AssetKind) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: fmt.Sprintf("Upload a local %s file", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			if !filepath.IsAbs(path) {
				path = filepath.Join(e.deps.WorkDir, path)
			}
			info, err := e.deps.Fs.Stat(path)
			if err != nil {
				return apierrors.NewUploadError(filepath.Base(path), "file not found", err)
			}
			if info.IsDir() {
				return apierrors.NewUploadError(filepath.Base(path), "is a directory", nil)
			}

			svc, err := e.service()
			if err != nil {
				return err
			}

			spin := newSpinner(e.deps.Err, fmt.Sprintf("Uploading %s (%s)", filepath.Base(path), humanize.Bytes(uint64(info.Size()))))
			spin.start()
			outcome, err := svc.Upload(cmd.Context(), kind, path)
			if err != nil {
				spin.stopWithError()
				return err
			}
			if outcome.IsSuccess() {
				spin.stopWithSuccess(fmt.Sprintf("Uploaded (HTTP %d)", outcome.StatusCode))
			} else {
				spin.stopWithError()
				fmt.Fprintln(e.deps.Err, warnStyle.Render(fmt.Sprintf("Upload returned HTTP %d", outcome.StatusCode)))
			}

			fmt.Fprintln(cmd.OutOrStdout(), api.FormatJSON(outcome.Body))
			return nil
		},
	}
}

func newCaptionCmd(e *env, kind models.AssetKind) *cobra.Command {
	use, short, label := "caption <id>", "Caption a video by ID", "video ID"
	if kind == models.AssetImage {
		use, short, label = "caption <url>", "Caption an image by URL", "image URL"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator := strings.TrimSpace(args[0])
			if locator == "" {
				return fmt.Errorf("%s is required", label)
			}
			style, err := e.styleFor(cmd)
			if err != nil {
				return err
			}
			svc, err := e.service()
			if err != nil {
				return err
			}

			spin := newSpinner(e.deps.Err, fmt.Sprintf("Generating %s caption", style))
			spin.start()
			outcome, err := svc.CaptionLocator(cmd.Context(), kind, locator, style)
			if err != nil {
				spin.stopWithError()
				return err
			}
			spin.stopWithSuccess("Done")

			if jsonOutput(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), api.FormatJSON(outcome.Result.Raw))
				return nil
			}
			e.printCaption(cmd.OutOrStdout(), outcome)
			return nil
		},
	}
	addStyleFlag(cmd)
	return cmd
}

// printCaption writes the caption to out and notes about it to stderr
func (e *env) printCaption(out io.Writer, outcome *app.CaptionOutcome) {
	body, isCaption := render.CaptionOrRaw(outcome.Result, e.renderOptions())
	if !isCaption {
		fmt.Fprintln(e.deps.Err, warnStyle.Render("No caption found in the response; showing the raw body"))
		fmt.Fprintln(out, body)
		return
	}

	if isTerminal(out) {
		fmt.Fprintln(out, captionBoxStyle.Render(strings.TrimSpace(body)))
	} else {
		fmt.Fprintln(out, strings.TrimSpace(outcome.Result.Text))
	}

	if outcome.SavedPath != "" {
		fmt.Fprintln(e.deps.Err, successStyle.Render("✓ Saved to "+outcome.SavedPath))
	}
	if outcome.SaveErr != nil {
		fmt.Fprintln(e.deps.Err, warnStyle.Render("Could not save caption: "+outcome.SaveErr.Error()))
	}
	if outcome.Copied {
		fmt.Fprintln(e.deps.Err, successStyle.Render("✓ Copied to clipboard"))
	}
}
