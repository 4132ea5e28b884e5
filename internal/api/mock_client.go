package api

import (
	"context"

	"github.com/diogo/captionthis/internal/models"
)

// MockVisionClient is a mock implementation of VisionClientInterface for testing
type MockVisionClient struct {
	// Mock return values
	VideosVal   *models.AssetList
	VideosErr   error
	ImagesVal   *models.AssetList
	ImagesErr   error
	DeleteVal   *models.UploadOutcome
	DeleteErr   error
	UploadVal   *models.UploadOutcome
	UploadErr   error
	CaptionVal  *models.CaptionResult
	CaptionErr  error
	IsClosedVal bool
	// GetVideosSeq, when set, is returned one entry per GetVideos call;
	// the last entry repeats.
	GetVideosSeq []*models.AssetList

	// Call counters/recorders
	CloseCalled     bool
	GetVideosCalls  int
	LastVideoID     string
	LastImageURL    string
	LastUploadPath  string
	LastStyle       models.PromptStyle
	LastPrompt      string
	UploadedVideos  []string
	UploadedImages  []string
	DeletedVideoIDs []string
}

// Ensure MockVisionClient implements VisionClientInterface
var _ VisionClientInterface = (*MockVisionClient)(nil)

func (m *MockVisionClient) ListVideos(ctx context.Context) (*models.AssetList, error) {
	return m.videos(), m.VideosErr
}

func (m *MockVisionClient) GetVideos(ctx context.Context, ids ...string) (*models.AssetList, error) {
	m.GetVideosCalls++
	if len(m.GetVideosSeq) > 0 {
		i := m.GetVideosCalls - 1
		if i >= len(m.GetVideosSeq) {
			i = len(m.GetVideosSeq) - 1
		}
		return m.GetVideosSeq[i], m.VideosErr
	}
	return m.videos(), m.VideosErr
}

func (m *MockVisionClient) videos() *models.AssetList {
	if m.VideosVal != nil {
		return m.VideosVal
	}
	return &models.AssetList{Kind: models.AssetVideo, Records: []models.AssetRecord{}}
}

func (m *MockVisionClient) DeleteVideo(ctx context.Context, id string) (*models.UploadOutcome, error) {
	m.LastVideoID = id
	m.DeletedVideoIDs = append(m.DeletedVideoIDs, id)
	return m.DeleteVal, m.DeleteErr
}

func (m *MockVisionClient) UploadVideo(ctx context.Context, path string) (*models.UploadOutcome, error) {
	m.LastUploadPath = path
	m.UploadedVideos = append(m.UploadedVideos, path)
	return m.UploadVal, m.UploadErr
}

func (m *MockVisionClient) CaptionVideo(ctx context.Context, id string, style models.PromptStyle) (*models.CaptionResult, error) {
	m.LastVideoID = id
	m.LastStyle = style
	m.LastPrompt = models.Prompt(models.AssetVideo, style)
	return m.caption(models.ShapeSections), m.CaptionErr
}

func (m *MockVisionClient) AskVideo(ctx context.Context, id, prompt string) (*models.CaptionResult, error) {
	m.LastVideoID = id
	m.LastPrompt = prompt
	return m.caption(models.ShapeSections), m.CaptionErr
}

func (m *MockVisionClient) ListImages(ctx context.Context) (*models.AssetList, error) {
	if m.ImagesVal != nil {
		return m.ImagesVal, m.ImagesErr
	}
	return &models.AssetList{Kind: models.AssetImage, Records: []models.AssetRecord{}}, m.ImagesErr
}

func (m *MockVisionClient) UploadImage(ctx context.Context, path string) (*models.UploadOutcome, error) {
	m.LastUploadPath = path
	m.UploadedImages = append(m.UploadedImages, path)
	return m.UploadVal, m.UploadErr
}

func (m *MockVisionClient) CaptionImage(ctx context.Context, url string, style models.PromptStyle) (*models.CaptionResult, error) {
	m.LastImageURL = url
	m.LastStyle = style
	m.LastPrompt = models.Prompt(models.AssetImage, style)
	return m.caption(models.ShapeCompletion), m.CaptionErr
}

func (m *MockVisionClient) caption(shape models.CaptionShape) *models.CaptionResult {
	if m.CaptionErr != nil {
		return nil
	}
	if m.CaptionVal != nil {
		return m.CaptionVal
	}
	return &models.CaptionResult{Shape: shape}
}

func (m *MockVisionClient) Close() {
	m.CloseCalled = true
}

func (m *MockVisionClient) IsClosed() bool {
	return m.IsClosedVal
}
