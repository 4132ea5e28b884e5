package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/captionthis/internal/models"
)

// newImagesCmd has no delete: the API only deletes videos
func newImagesCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "images",
		Aliases: []string{"image"},
		Short:   "List, upload and caption images",
	}
	addJSONFlag(cmd)

	cmd.AddCommand(
		newListCmd(e, models.AssetImage),
		newUploadCmd(e, models.AssetImage),
		newCaptionCmd(e, models.AssetImage),
	)
	return cmd
}
