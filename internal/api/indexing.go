package api

import (
	"context"
	"fmt"
	"time"

	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// Indexing poll defaults
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollAttempts = 60
)

// VideoGetter is the part of the client the indexing poller needs
type VideoGetter interface {
	GetVideos(ctx context.Context, ids ...string) (*models.AssetList, error)
}

// PollOptions configures WaitForIndexing
type PollOptions struct {
	Interval time.Duration
	Attempts int
	// OnPoll is called after every status check
	OnPoll func(attempt int, status string)
}

// UploadedVideoID reads the video_id of an upload response
func UploadedVideoID(outcome *models.UploadOutcome) (string, error) {
	if outcome == nil {
		return "", apierrors.NewParseError("empty upload response", PathUploadVideoID)
	}
	doc, ok := ParseDocument(outcome.Body)
	if !ok {
		return "", apierrors.NewParseError("upload response is not JSON", PathUploadVideoID)
	}
	id := StringField(doc, PathUploadVideoID, "")
	if id == "" {
		return "", apierrors.NewParseError("no video_id in upload response", PathUploadVideoID)
	}
	return id, nil
}

// WaitForIndexing polls the status of videoID until it is indexed, the
// attempts run out or ctx is done.
func WaitForIndexing(ctx context.Context, getter VideoGetter, videoID string, opts PollOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultPollAttempts
	}

	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		list, err := getter.GetVideos(ctx, videoID)
		if err != nil {
			return err
		}

		status := models.IndexingStatusUnknown
		if list.Len() > 0 && list.Records[0].Status != "" {
			status = list.Records[0].Status
		}
		if opts.OnPoll != nil {
			opts.OnPoll(attempt, status)
		}
		if status == models.IndexingStatusIndexed {
			return nil
		}

		if attempt == opts.Attempts {
			break
		}

		timer := time.NewTimer(opts.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return apierrors.NewTimeoutError(fmt.Sprintf("video %s was not indexed after %d checks", videoID, opts.Attempts))
}
