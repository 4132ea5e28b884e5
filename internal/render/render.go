package render

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/models"
)

// Markdown renders content for the terminal with a pooled renderer
func Markdown(content string, opts Options) (string, error) {
	tr, err := pool.acquire(opts)
	if err != nil {
		return "", err
	}
	defer pool.release(opts, tr)

	return tr.Render(content)
}

// Caption renders caption text as markdown. When the renderer fails the
// text is word-wrapped instead, so a caption is never lost.
func Caption(text string, opts Options) string {
	out, err := Markdown(text, opts)
	if err != nil {
		return wordwrap.String(text, opts.Width)
	}
	return strings.Trim(out, "\n")
}

// CaptionOrRaw renders the caption of result, or its pretty-printed raw
// body when no caption was extracted. The bool reports which was used.
func CaptionOrRaw(result *models.CaptionResult, opts Options) (string, bool) {
	if result == nil {
		return "", false
	}
	if result.Empty() {
		return strings.TrimRight(api.FormatJSON(result.Raw), "\n"), false
	}
	return Caption(result.Text, opts), true
}
