package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"

	"github.com/diogo/captionthis/internal/api"
	"github.com/diogo/captionthis/internal/app"
	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
	"github.com/diogo/captionthis/internal/store"
)

// scriptedPrompter answers prompts from fixed queues. An exhausted input
// queue behaves like ctrl+c.
type scriptedPrompter struct {
	inputs   []string
	selects  []string
	messages []string
}

func (p *scriptedPrompter) Input(message string) (string, error) {
	p.messages = append(p.messages, message)
	if len(p.inputs) == 0 {
		return "", ErrAborted
	}
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	return next, nil
}

func (p *scriptedPrompter) Password(message string) (string, error) {
	return p.Input(message)
}

func (p *scriptedPrompter) Select(message string, options []string, def string) (string, error) {
	p.messages = append(p.messages, message)
	if len(p.selects) == 0 {
		return def, nil
	}
	next := p.selects[0]
	p.selects = p.selects[1:]
	return next, nil
}

type consoleFixture struct {
	console *Console
	out     *bytes.Buffer
	prompt  *scriptedPrompter
	fs      afero.Fs
	hook    *test.Hook
}

func newFixture(mock *api.MockVisionClient, inputs ...string) *consoleFixture {
	fs := afero.NewMemMapFs()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	svc := app.New(mock, store.NewCaptionStore(fs, "data"), app.WithLogger(logger))

	out := &bytes.Buffer{}
	prompt := &scriptedPrompter{inputs: inputs}
	c := New(svc, Options{
		Prompter: prompt,
		Out:      out,
		Fs:       fs,
		Log:      logger,
		WorkDir:  "/work",
	})
	return &consoleFixture{console: c, out: out, prompt: prompt, fs: fs, hook: hook}
}

func (f *consoleFixture) run(t *testing.T) string {
	t.Helper()
	if err := f.console.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return f.out.String()
}

func TestRun_ExitAndInvalidOption(t *testing.T) {
	f := newFixture(&api.MockVisionClient{}, "9", "", "x")
	out := f.run(t)

	if strings.Count(out, "Caption This - Main Menu") != 2 {
		t.Errorf("menu should be shown twice:\n%s", out)
	}
	if !strings.Contains(out, "Invalid option. Please try again.") {
		t.Error("expected invalid option message")
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("expected goodbye")
	}
	if f.prompt.messages[1] != "Press Enter to continue..." {
		t.Errorf("second prompt = %q", f.prompt.messages[1])
	}
}

func TestRun_AbortIsAGracefulExit(t *testing.T) {
	f := newFixture(&api.MockVisionClient{})
	out := f.run(t)
	if !strings.Contains(out, "Goodbye!") {
		t.Error("ctrl+c at the menu should say goodbye")
	}
}

func TestRun_CancelledContext(t *testing.T) {
	f := newFixture(&api.MockVisionClient{}, "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.console.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestListVideos(t *testing.T) {
	mock := &api.MockVisionClient{VideosVal: &models.AssetList{
		Kind:       models.AssetVideo,
		HasResults: true,
		Records: []models.AssetRecord{
			{Kind: models.AssetVideo, ID: "vid-1", DisplayName: "beach.mp4", Locator: "vid-1"},
			{Kind: models.AssetVideo, ID: "vid-2", Locator: "vid-2"},
		},
	}}
	f := newFixture(mock, "1", "", "x")
	out := f.run(t)

	for _, want := range []string{"Video ID", "Video Name", "vid-1", "beach.mp4", "vid-2", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestListImages_RawFallback(t *testing.T) {
	mock := &api.MockVisionClient{ImagesVal: &models.AssetList{
		Kind: models.AssetImage,
		Raw:  []byte(`{"message":"no results key"}`),
	}}
	f := newFixture(mock, "4", "", "x")
	out := f.run(t)

	if !strings.Contains(out, `"message": "no results key"`) {
		t.Errorf("expected pretty raw JSON:\n%s", out)
	}
	if strings.Contains(out, "Image URL") {
		t.Error("no table should be printed without results")
	}
}

func TestListImages_Count(t *testing.T) {
	mock := &api.MockVisionClient{ImagesVal: &models.AssetList{
		Kind:       models.AssetImage,
		HasResults: true,
		Records: []models.AssetRecord{
			{Kind: models.AssetImage, ID: "img-1", Locator: "https://cdn.test/1.jpg"},
		},
	}}
	f := newFixture(mock, "4", "", "x")
	out := f.run(t)

	if !strings.Contains(out, "Found 1 image(s)") || !strings.Contains(out, "https://cdn.test/1.jpg") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCaptionVideo(t *testing.T) {
	mock := &api.MockVisionClient{
		CaptionVal: &models.CaptionResult{Shape: models.ShapeSections, Text: "Waves roll onto the shore."},
	}
	f := newFixture(mock, "2", "vid-1", "", "x")
	f.prompt.selects = []string{"Detailed"}
	out := f.run(t)

	if mock.LastVideoID != "vid-1" || mock.LastStyle != models.StyleDetailed {
		t.Errorf("captioned %q with %v", mock.LastVideoID, mock.LastStyle)
	}
	if !strings.Contains(out, "Response saved to data/video_captioned.json") {
		t.Errorf("expected saved message:\n%s", out)
	}
	saved, err := afero.ReadFile(f.fs, "data/video_captioned.json")
	if err != nil || string(saved) != "Waves roll onto the shore." {
		t.Errorf("saved caption = %q (%v)", saved, err)
	}
}

func TestCaptionImage_RequiresURL(t *testing.T) {
	mock := &api.MockVisionClient{}
	f := newFixture(mock, "5", "  ", "", "x")
	out := f.run(t)

	if !strings.Contains(out, "Image URL is required.") {
		t.Errorf("expected required message:\n%s", out)
	}
	if mock.LastImageURL != "" {
		t.Error("no caption request should be made")
	}
}

func TestCaptionImage_RawBody(t *testing.T) {
	mock := &api.MockVisionClient{
		CaptionVal: &models.CaptionResult{Shape: models.ShapeCompletion, Raw: []byte(`{"responses":[]}`)},
	}
	f := newFixture(mock, "5", "https://cdn.test/1.jpg", "", "x")
	out := f.run(t)

	if !strings.Contains(out, "No caption found") || !strings.Contains(out, `"responses"`) {
		t.Errorf("expected raw body fallback:\n%s", out)
	}
	if mock.LastImageURL != "https://cdn.test/1.jpg" {
		t.Errorf("LastImageURL = %q", mock.LastImageURL)
	}
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name       string
		option     string
		path       string
		wantOut    string
		wantUpload bool
	}{
		{"video relative path", "3", "clip.mp4", `"video_id": "v1"`, true},
		{"image absolute path", "6", "/work/photo.png", `"video_id": "v1"`, true},
		{"missing file", "3", "nope.mp4", "File not found.", false},
		{"directory", "6", "/work", "File not found.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &api.MockVisionClient{
				UploadVal: &models.UploadOutcome{StatusCode: 200, Body: []byte(`{"video_id":"v1"}`)},
			}
			f := newFixture(mock, tt.option, tt.path, "", "x")
			_ = afero.WriteFile(f.fs, "/work/clip.mp4", make([]byte, 1500), 0o644)
			_ = afero.WriteFile(f.fs, "/work/photo.png", []byte("png"), 0o644)

			out := f.run(t)
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
			if got := mock.LastUploadPath != ""; got != tt.wantUpload {
				t.Errorf("uploaded = %v, want %v", got, tt.wantUpload)
			}
			if tt.wantUpload && !strings.Contains(out, "Current folder: /work") {
				t.Error("upload should show the current folder")
			}
		})
	}
}

func TestUpload_ShowsHumanSize(t *testing.T) {
	mock := &api.MockVisionClient{UploadVal: &models.UploadOutcome{StatusCode: 200, Body: []byte(`{}`)}}
	f := newFixture(mock, "3", "clip.mp4", "", "x")
	_ = afero.WriteFile(f.fs, "/work/clip.mp4", make([]byte, 1500), 0o644)

	out := f.run(t)
	if !strings.Contains(out, "Uploading clip.mp4 (1.5 kB)") {
		t.Errorf("expected humanized size:\n%s", out)
	}
}

func TestDeleteVideo_ErrorIsPrintedAndLogged(t *testing.T) {
	mock := &api.MockVisionClient{
		DeleteErr: apierrors.NewAPIErrorWithBody(404, "/videos/delete", "delete failed", `{"detail":"not found"}`),
	}
	f := newFixture(mock, "7", "vid-9", "", "x")
	out := f.run(t)

	if !strings.Contains(out, "❌ Error:") || !strings.Contains(out, `{"detail":"not found"}`) {
		t.Errorf("expected error with body:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye!") {
		t.Error("the loop should continue after an error")
	}

	var logged bool
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "menu action failed" {
			logged = true
		}
	}
	if !logged {
		t.Error("expected the failure to be logged at error level")
	}
}

func TestDeleteVideo_ErrorStatusShowsBody(t *testing.T) {
	mock := &api.MockVisionClient{
		DeleteVal: &models.UploadOutcome{StatusCode: 404, Body: []byte(`{"detail":"unknown video"}`)},
	}
	f := newFixture(mock, "7", "vid-9", "", "x")
	out := f.run(t)

	if !strings.Contains(out, "HTTP 404") || !strings.Contains(out, `"detail"`) {
		t.Errorf("expected status warning and body:\n%s", out)
	}
}

func TestDeleteVideo(t *testing.T) {
	mock := &api.MockVisionClient{
		DeleteVal: &models.UploadOutcome{StatusCode: 200, Body: []byte(`{"deleted":["vid-9"]}`)},
	}
	f := newFixture(mock, "7", "vid-9", "", "x")
	out := f.run(t)

	if len(mock.DeletedVideoIDs) != 1 || mock.DeletedVideoIDs[0] != "vid-9" {
		t.Errorf("DeletedVideoIDs = %v", mock.DeletedVideoIDs)
	}
	if !strings.Contains(out, `"deleted"`) {
		t.Errorf("expected response body:\n%s", out)
	}
}
