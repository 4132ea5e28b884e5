package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/app"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

func newPipelineCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline <video>",
		Short: "Upload a video, wait for indexing and caption it",
		Long: `Upload a local video, poll until the library has indexed it, ask for a
caption and write captions/<name>_caption.json next to the video.

The prompt is the pipeline prompt unless --style or --prompt is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(args[0])
			if !filepath.IsAbs(path) {
				path = filepath.Join(e.deps.WorkDir, path)
			}
			if info, err := e.deps.Fs.Stat(path); err != nil || info.IsDir() {
				return apierrors.NewUploadError(filepath.Base(path), "file not found", err)
			}

			prompt, err := pipelinePrompt(cmd)
			if err != nil {
				return err
			}
			svc, err := e.service()
			if err != nil {
				return err
			}

			spin := newSpinner(e.deps.Err, "Uploading "+filepath.Base(path))
			spin.start()
			result, err := svc.RunPipeline(cmd.Context(), path, app.PipelineOptions{
				Prompt: prompt,
				Poll: api.PollOptions{
					Interval: e.cfg.PollInterval(),
					Attempts: e.cfg.PollAttempts,
				},
				OnStage: func(stage app.Stage, detail string) {
					spin.setMessage(stageMessage(stage, detail))
				},
			})
			if err != nil {
				spin.stopWithError()
				if result != nil && result.Caption != nil && result.RecordPath == "" {
					fmt.Fprintln(e.deps.Err, warnStyle.Render("No caption found in the response; nothing was saved"))
					fmt.Fprintln(cmd.OutOrStdout(), api.FormatJSON(result.Caption.Raw))
				}
				return err
			}
			spin.stopWithSuccess("Video " + result.VideoID)

			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(result.Text))
			fmt.Fprintln(e.deps.Err, successStyle.Render("✓ Saved to "+result.RecordPath))
			return nil
		},
	}

	cmd.Flags().StringP("style", "s", "", "Use the short or detailed caption prompt")
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt text")
	cmd.MarkFlagsMutuallyExclusive("style", "prompt")
	lo.Must0(cmd.RegisterFlagCompletionFunc("style", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(models.PromptStyles(), func(s models.PromptStyle, _ int) string { return s.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
	return cmd
}

// pipelinePrompt picks the prompt from --prompt or --style. Empty means the
// pipeline default.
func pipelinePrompt(cmd *cobra.Command) (string, error) {
	if prompt := strings.TrimSpace(lo.Must(cmd.Flags().GetString("prompt"))); prompt != "" {
		return prompt, nil
	}
	name := lo.Must(cmd.Flags().GetString("style"))
	if name == "" {
		return "", nil
	}
	style, err := models.ParsePromptStyle(name)
	if err != nil {
		return "", err
	}
	return models.Prompt(models.AssetVideo, style), nil
}

func stageMessage(stage app.Stage, detail string) string {
	switch stage {
	case app.StageUpload:
		return "Uploading"
	case app.StageIndexing:
		return "Indexing: " + detail
	case app.StageCaption:
		return "Generating caption"
	case app.StageSave:
		return "Saving caption"
	}
	return detail
}
