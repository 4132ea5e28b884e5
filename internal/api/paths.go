// Package api provides the vision API client and the normalization of its responses.
package api

// GJSON paths for extracting values from upstream responses.
const (
	// List responses (videos and images)
	PathResults = "results"

	// Video list item paths (relative to a results element)
	PathVideoID        = "video_id"
	PathVideoName      = "metadata.video_name"
	PathIndexingStatus = "indexing_status"

	// Image list item paths (relative to a results element)
	PathImageID  = "image_id"
	PathImageURL = "image_url"

	// /qa/chat response. chat_response is a JSON document encoded as a
	// string, so the sections path applies to the decoded inner document.
	PathChatResponse    = "chat_response"
	PathSections        = "sections"
	PathSectionMarkdown = "markdown"

	// Chat completions response
	PathCompletionContent = "choices.0.message.content"

	// Upload response
	PathUploadVideoID = "video_id"
)
