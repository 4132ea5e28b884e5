// Package app holds the operations shared by the console and TUI front ends.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/store"
)

// CaptionOutcome is a caption plus what happened to it locally
type CaptionOutcome struct {
	Kind   models.AssetKind
	Result *models.CaptionResult
	// SavedPath is empty when nothing was saved
	SavedPath string
	// SaveErr is a failure to write the caption file; the caption is still shown
	SaveErr error
	Copied  bool
}

// Service runs one front-end action at a time against the API client
type Service struct {
	client          api.VisionClientInterface
	store           *store.CaptionStore
	log             logrus.FieldLogger
	copyToClipboard bool
	writeClipboard  func(string) error
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger transport failures are reported to
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// WithClipboard enables copying generated captions with write
func WithClipboard(write func(string) error) Option {
	return func(s *Service) {
		s.copyToClipboard = true
		if write != nil {
			s.writeClipboard = write
		}
	}
}

// New creates a Service
func New(client api.VisionClientInterface, captions *store.CaptionStore, opts ...Option) *Service {
	s := &Service{
		client:         client,
		store:          captions,
		log:            logrus.StandardLogger(),
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Client returns the underlying API client
func (s *Service) Client() api.VisionClientInterface {
	return s.client
}

// Store returns the caption store
func (s *Service) Store() *store.CaptionStore {
	return s.store
}

// ListAssets lists the assets of kind
func (s *Service) ListAssets(ctx context.Context, kind models.AssetKind) (*models.AssetList, error) {
	var (
		list *models.AssetList
		err  error
	)
	if kind == models.AssetImage {
		list, err = s.client.ListImages(ctx)
	} else {
		list, err = s.client.ListVideos(ctx)
	}
	if err != nil {
		s.log.WithError(err).WithField("kind", kind.String()).Error("list failed")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"kind": kind.String(), "count": list.Len()}).Debug("listed assets")
	return list, nil
}

// Caption captions the asset a record points at
func (s *Service) Caption(ctx context.Context, record models.AssetRecord, style models.PromptStyle) (*CaptionOutcome, error) {
	return s.CaptionLocator(ctx, record.Kind, record.Locator, style)
}

// CaptionLocator captions a video by id or an image by URL. A non-empty
// caption is saved and optionally copied to the clipboard.
func (s *Service) CaptionLocator(ctx context.Context, kind models.AssetKind, locator string, style models.PromptStyle) (*CaptionOutcome, error) {
	locator = strings.TrimSpace(locator)

	var (
		result *models.CaptionResult
		err    error
	)
	if kind == models.AssetImage {
		result, err = s.client.CaptionImage(ctx, locator, style)
	} else {
		result, err = s.client.CaptionVideo(ctx, locator, style)
	}
	if err != nil {
		s.log.WithError(err).WithField("locator", locator).Error("caption failed")
		return nil, err
	}

	outcome := &CaptionOutcome{Kind: kind, Result: result}
	if result.Empty() {
		s.log.WithField("locator", locator).Warn("no caption in response, showing raw body")
		return outcome, nil
	}

	s.keep(outcome, result.Text)
	return outcome, nil
}

// keep saves text and copies it when enabled
func (s *Service) keep(outcome *CaptionOutcome, text string) {
	if s.store != nil {
		path, err := s.store.SaveCaption(outcome.Kind, text)
		if err != nil {
			s.log.WithError(err).Error("save caption failed")
			outcome.SaveErr = err
		} else {
			outcome.SavedPath = path
		}
	}

	if s.copyToClipboard {
		if err := s.writeClipboard(text); err != nil {
			s.log.WithError(err).Warn("clipboard copy failed")
		} else {
			outcome.Copied = true
		}
	}
}

// Upload uploads a local file as an asset of kind
func (s *Service) Upload(ctx context.Context, kind models.AssetKind, path string) (*models.UploadOutcome, error) {
	path = strings.TrimSpace(path)

	var (
		outcome *models.UploadOutcome
		err     error
	)
	if kind == models.AssetImage {
		outcome, err = s.client.UploadImage(ctx, path)
	} else {
		outcome, err = s.client.UploadVideo(ctx, path)
	}
	if err != nil {
		s.log.WithError(err).WithField("path", path).Error("upload failed")
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{"path": path, "status": outcome.StatusCode})
	if outcome.IsSuccess() {
		entry.Info("uploaded")
	} else {
		entry.Warn("upload rejected")
	}
	return outcome, nil
}

// DeleteVideo deletes a video by id
func (s *Service) DeleteVideo(ctx context.Context, id string) (*models.UploadOutcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("video id cannot be empty")
	}

	outcome, err := s.client.DeleteVideo(ctx, id)
	if err != nil {
		s.log.WithError(err).WithField("video_id", id).Error("delete failed")
		return nil, err
	}
	return outcome, nil
}
