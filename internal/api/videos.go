package api

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diogo/captionthis/internal/models"
)

type videoIDsRequest struct {
	VideoIDs []string `json:"video_ids"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type videoChatRequest struct {
	VideoID  string        `json:"video_id"`
	Messages []chatMessage `json:"messages"`
}

// ListVideos lists every video held by the service
func (c *VisionClient) ListVideos(ctx context.Context) (*models.AssetList, error) {
	return c.GetVideos(ctx)
}

// GetVideos lists the given videos, or all of them when ids is empty
func (c *VisionClient) GetVideos(ctx context.Context, ids ...string) (*models.AssetList, error) {
	if ids == nil {
		ids = []string{}
	}

	body, _, err := c.postJSON(ctx, c.baseURL, models.EndpointVideosList, "list videos", videoIDsRequest{VideoIDs: ids})
	if err != nil {
		return nil, err
	}

	list := NormalizeAssets(body, models.AssetVideo)
	return &list, nil
}

// DeleteVideo deletes one video and passes the response through, error
// statuses included
func (c *VisionClient) DeleteVideo(ctx context.Context, id string) (*models.UploadOutcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("video id cannot be empty")
	}

	req, err := newJSONRequest(ctx, c.baseURL+models.EndpointVideosDelete, "delete video", videoIDsRequest{VideoIDs: []string{id}})
	if err != nil {
		return nil, err
	}
	return c.passThrough(req, models.EndpointVideosDelete, "delete video")
}

// UploadVideo uploads a local video and asks for it to be indexed
func (c *VisionClient) UploadVideo(ctx context.Context, path string) (*models.UploadOutcome, error) {
	return c.uploadFile(ctx, models.EndpointVideosUpload, models.FormFieldVideoFile, path, VideoContentType(path), []formField{
		{name: models.FormFieldVideoName, value: filepath.Base(path)},
		{name: models.FormFieldIndex, value: "true"},
	})
}

// CaptionVideo captions an indexed video with the prompt for style
func (c *VisionClient) CaptionVideo(ctx context.Context, id string, style models.PromptStyle) (*models.CaptionResult, error) {
	return c.AskVideo(ctx, id, models.Prompt(models.AssetVideo, style))
}

// AskVideo sends an arbitrary prompt about a video
func (c *VisionClient) AskVideo(ctx context.Context, id, prompt string) (*models.CaptionResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("video id cannot be empty")
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt cannot be empty")
	}

	req := videoChatRequest{
		VideoID:  id,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	body, _, err := c.postJSON(ctx, c.baseURL, models.EndpointQAChat, "caption video", req)
	if err != nil {
		return nil, err
	}

	result := ExtractVideoCaption(body)
	return &result, nil
}
