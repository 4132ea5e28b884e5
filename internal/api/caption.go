package api

import (
	"strings"

	"github.com/diogo/captionthis/internal/models"
)

// ExtractCaption extracts caption text from raw using the parser for shape
func ExtractCaption(raw []byte, shape models.CaptionShape) models.CaptionResult {
	switch shape {
	case models.ShapeCompletion:
		return ExtractImageCaption(raw)
	default:
		return ExtractVideoCaption(raw)
	}
}

// ExtractVideoCaption handles the /qa/chat shape. chat_response is itself a
// JSON document encoded as a string: it is decoded a second time and the
// markdown of each section is concatenated in order, with no separator.
func ExtractVideoCaption(raw []byte) models.CaptionResult {
	result := models.CaptionResult{Shape: models.ShapeSections, Raw: raw}

	outer, ok := ParseDocument(raw)
	if !ok {
		return result
	}

	inner, ok := ParseDocument([]byte(StringField(outer, PathChatResponse, "")))
	if !ok {
		return result
	}

	var sb strings.Builder
	for _, section := range ArrayField(inner, PathSections) {
		sb.WriteString(StringField(section, PathSectionMarkdown, ""))
	}
	result.Text = sb.String()

	return result
}

// ExtractImageCaption handles the chat-completions shape, where the caption
// is choices[0].message.content as a plain string.
func ExtractImageCaption(raw []byte) models.CaptionResult {
	result := models.CaptionResult{Shape: models.ShapeCompletion, Raw: raw}

	doc, ok := ParseDocument(raw)
	if !ok {
		return result
	}
	result.Text = StringField(doc, PathCompletionContent, "")

	return result
}
