package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/diogo/captionthis/internal/models"
)

type imageIDsRequest struct {
	ImageIDs []string `json:"image_ids"`
}

type completionContent struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url,omitempty"`
	Text     string `json:"text,omitempty"`
}

type completionMessage struct {
	Role    string              `json:"role"`
	Content []completionContent `json:"content"`
}

type completionRequest struct {
	Messages []completionMessage `json:"messages"`
	Model    string              `json:"model"`
}

// ListImages lists every image held by the service
func (c *VisionClient) ListImages(ctx context.Context) (*models.AssetList, error) {
	body, _, err := c.postJSON(ctx, c.baseURL, models.EndpointImagesList, "list images", imageIDsRequest{ImageIDs: []string{}})
	if err != nil {
		return nil, err
	}

	list := NormalizeAssets(body, models.AssetImage)
	return &list, nil
}

// UploadImage uploads a local image and asks for it to be indexed
func (c *VisionClient) UploadImage(ctx context.Context, path string) (*models.UploadOutcome, error) {
	return c.uploadFile(ctx, models.EndpointImagesUpload, models.FormFieldImageFile, path, ImageContentType(path), []formField{
		{name: models.FormFieldMetadata, value: imageUploadMetadata},
	})
}

// CaptionImage captions the image at url with the prompt for style
func (c *VisionClient) CaptionImage(ctx context.Context, url string, style models.PromptStyle) (*models.CaptionResult, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("image url cannot be empty")
	}

	req := completionRequest{
		Messages: []completionMessage{{
			Role: "user",
			Content: []completionContent{
				{Type: "image_url", ImageURL: url},
				{Type: "text", Text: models.Prompt(models.AssetImage, style)},
			},
		}},
		Model: models.ChatModel,
	}

	body, _, err := c.postJSON(ctx, c.chatURL, models.EndpointChatCompletions, "caption image", req)
	if err != nil {
		return nil, err
	}

	result := ExtractImageCaption(body)
	return &result, nil
}
