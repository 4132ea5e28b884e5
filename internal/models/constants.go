// Package models contains data types and constants for the vision API.
package models

// Default upstream hosts
const (
	DefaultBaseURL = "https://vision-agent.api.reka.ai"
	DefaultChatURL = "https://api.reka.ai"
)

// Endpoint paths, relative to the base URL
const (
	EndpointVideosList   = "/videos/list"
	EndpointVideosDelete = "/videos/delete"
	EndpointVideosUpload = "/videos/upload"
	EndpointImagesList   = "/images/list"
	EndpointImagesUpload = "/images/upload"
	EndpointQAChat       = "/qa/chat"

	// EndpointChatCompletions is relative to the chat URL, not the base URL
	EndpointChatCompletions = "/v1/chat/completions"
)

// HeaderAPIKey carries the static key on every request
const HeaderAPIKey = "X-Api-Key"

// ChatModel is the model requested for image chat completions
const ChatModel = "reka-flash"

// Indexing states reported by /videos/list
const (
	IndexingStatusIndexed = "indexed"
	IndexingStatusUnknown = "unknown"
)

// Upload form field names
const (
	FormFieldVideoFile = "file"
	FormFieldVideoName = "video_name"
	FormFieldIndex     = "index"
	FormFieldImageFile = "images"
	FormFieldMetadata  = "metadata"
)

// DefaultHeaders returns the headers sent with every JSON request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "captionthis/0.1",
	}
}
