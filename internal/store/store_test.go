package store

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/diogo/captionthis/internal/models"
)

func TestSaveCaption(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewCaptionStore(fs, "data")

	tests := []struct {
		kind     models.AssetKind
		text     string
		wantPath string
	}{
		{models.AssetVideo, "Hello world", filepath.Join("data", "video_captioned.json")},
		{models.AssetImage, "A red barn.", filepath.Join("data", "image_captioned.json")},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			path, err := s.SaveCaption(tt.kind, tt.text)
			if err != nil {
				t.Fatalf("SaveCaption() error: %v", err)
			}
			if path != tt.wantPath {
				t.Errorf("path = %s, want %s", path, tt.wantPath)
			}

			data, err := afero.ReadFile(fs, tt.wantPath)
			if err != nil {
				t.Fatalf("file not written: %v", err)
			}
			if string(data) != tt.text {
				t.Errorf("content = %q, want %q", data, tt.text)
			}
		})
	}
}

func TestSaveCaption_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewCaptionStore(fs, "")

	_, _ = s.SaveCaption(models.AssetVideo, "first, longer caption")
	path, err := s.SaveCaption(models.AssetVideo, "second")
	if err != nil {
		t.Fatal(err)
	}

	if want := filepath.Join(DefaultDataDir, "video_captioned.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	got, _ := afero.ReadFile(fs, path)
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}
}

func TestSaveCaption_ReadOnly(t *testing.T) {
	s := NewCaptionStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "data")
	if _, err := s.SaveCaption(models.AssetVideo, "x"); err == nil {
		t.Error("SaveCaption() should fail on a read-only filesystem")
	}
}

func TestRecordPath(t *testing.T) {
	tests := map[string]string{
		"/media/clip.mp4":     filepath.Join("/media", "captions", "clip_caption.json"),
		"clip.final.mov":      filepath.Join(".", "captions", "clip.final_caption.json"),
		"/media/no-extension": filepath.Join("/media", "captions", "no-extension_caption.json"),
	}
	for in, want := range tests {
		if got := RecordPath(in); got != want {
			t.Errorf("RecordPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewCaptionStore(fs, "data")
	stamp := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	path, err := s.SaveRecord("/media/clip.mp4", models.NewCaptionRecord("v1", "A cat.", stamp))
	if err != nil {
		t.Fatalf("SaveRecord() error: %v", err)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	want := map[string]string{"video_id": "v1", "caption": "A cat.", "timestamp": "2025-03-04 05:06:07"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
