package api

import (
	"context"

	"github.com/diogo/captionthis/internal/models"
)

// VisionClientInterface defines the interface for the vision API client.
// This allows for mocking in tests and alternative implementations.
type VisionClientInterface interface {
	ListVideos(ctx context.Context) (*models.AssetList, error)
	GetVideos(ctx context.Context, ids ...string) (*models.AssetList, error)
	DeleteVideo(ctx context.Context, id string) (*models.UploadOutcome, error)
	UploadVideo(ctx context.Context, path string) (*models.UploadOutcome, error)
	CaptionVideo(ctx context.Context, id string, style models.PromptStyle) (*models.CaptionResult, error)
	AskVideo(ctx context.Context, id, prompt string) (*models.CaptionResult, error)

	ListImages(ctx context.Context) (*models.AssetList, error)
	UploadImage(ctx context.Context, path string) (*models.UploadOutcome, error)
	CaptionImage(ctx context.Context, url string, style models.PromptStyle) (*models.CaptionResult, error)

	Close()
	IsClosed() bool
}

// Ensure VisionClient implements VisionClientInterface
var _ VisionClientInterface = (*VisionClient)(nil)
