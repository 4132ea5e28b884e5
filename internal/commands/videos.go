package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/models"
)

func newVideosCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "videos",
		Aliases: []string{"video"},
		Short:   "List, upload, delete and caption videos",
	}
	addJSONFlag(cmd)

	cmd.AddCommand(
		newListCmd(e, models.AssetVideo),
		newUploadCmd(e, models.AssetVideo),
		newCaptionCmd(e, models.AssetVideo),
		newDeleteVideoCmd(e),
	)
	return cmd
}

func newDeleteVideoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a video by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return fmt.Errorf("video ID is required")
			}
			svc, err := e.service()
			if err != nil {
				return err
			}

			outcome, err := svc.DeleteVideo(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !outcome.IsSuccess() {
				fmt.Fprintln(e.deps.Err, warnStyle.Render(fmt.Sprintf("Delete returned HTTP %d", outcome.StatusCode)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), api.FormatJSON(outcome.Body))
			return nil
		},
	}
}
