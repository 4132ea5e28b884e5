package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/diogo/captionthis/internal/api"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// Stage identifies a step of the upload-to-caption pipeline
type Stage int

const (
	StageUpload Stage = iota
	StageIndexing
	StageCaption
	StageSave
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageUpload:
		return "upload"
	case StageIndexing:
		return "indexing"
	case StageCaption:
		return "caption"
	case StageSave:
		return "save"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// PipelineOptions configures RunPipeline
type PipelineOptions struct {
	// Prompt defaults to models.PipelinePrompt
	Prompt string
	Poll   api.PollOptions
	// OnStage reports progress; it may be nil
	OnStage func(stage Stage, detail string)
	// Now stamps the saved record; defaults to time.Now
	Now func() time.Time
}

// PipelineResult is what the pipeline produced
type PipelineResult struct {
	VideoID    string
	Caption    *models.CaptionResult
	Text       string // saved caption, the plain chat_response when it is not JSON
	RecordPath string
}

// RunPipeline uploads a video, waits for it to be indexed, captions it and
// writes captions/<stem>_caption.json next to the video
func (s *Service) RunPipeline(ctx context.Context, videoPath string, opts PipelineOptions) (*PipelineResult, error) {
	report := func(stage Stage, detail string) {
		s.log.WithField("stage", stage.String()).Info(detail)
		if opts.OnStage != nil {
			opts.OnStage(stage, detail)
		}
	}
	if opts.Prompt == "" {
		opts.Prompt = models.PipelinePrompt
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	report(StageUpload, "uploading "+videoPath)
	outcome, err := s.Upload(ctx, models.AssetVideo, videoPath)
	if err != nil {
		return nil, err
	}
	if !outcome.IsSuccess() {
		return nil, apierrors.NewAPIErrorWithBody(outcome.StatusCode, models.EndpointVideosUpload, "upload failed", string(outcome.Body))
	}
	videoID, err := api.UploadedVideoID(outcome)
	if err != nil {
		s.log.WithField("body", string(outcome.Body)).Error("upload response has no video_id")
		return nil, err
	}

	poll := opts.Poll
	userPoll := poll.OnPoll
	poll.OnPoll = func(attempt int, status string) {
		report(StageIndexing, fmt.Sprintf("check %d: %s", attempt, status))
		if userPoll != nil {
			userPoll(attempt, status)
		}
	}
	report(StageIndexing, "waiting for "+videoID)
	if err := api.WaitForIndexing(ctx, s.client, videoID, poll); err != nil {
		s.log.WithError(err).WithField("video_id", videoID).Error("indexing wait failed")
		return nil, err
	}

	report(StageCaption, "captioning "+videoID)
	caption, err := s.client.AskVideo(ctx, videoID, opts.Prompt)
	if err != nil {
		s.log.WithError(err).WithField("video_id", videoID).Error("caption failed")
		return nil, err
	}

	result := &PipelineResult{VideoID: videoID, Caption: caption}
	text := pipelineCaptionText(caption)
	if text == "" {
		s.log.WithFields(logrus.Fields{"video_id": videoID}).Warn("no caption in response")
		return result, apierrors.NewParseError("no caption in the caption response", api.PathChatResponse)
	}

	report(StageSave, "saving caption")
	record := models.NewCaptionRecord(videoID, text, opts.Now())
	path, err := s.store.SaveRecord(videoPath, record)
	if err != nil {
		return result, err
	}
	result.Text = text
	result.RecordPath = path

	report(StageDone, path)
	return result, nil
}

// pipelineCaptionText is the extracted caption, or the chat_response string
// itself when it is plain text rather than section JSON
func pipelineCaptionText(caption *models.CaptionResult) string {
	if text := strings.TrimSpace(caption.Text); text != "" {
		return caption.Text
	}
	doc, ok := api.ParseDocument(caption.Raw)
	if !ok {
		return ""
	}
	response := api.StringField(doc, api.PathChatResponse, "")
	if _, isJSON := api.ParseDocument([]byte(response)); isJSON {
		return ""
	}
	return strings.TrimSpace(response)
}
