// Package store persists generated captions on disk.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/diogo/captionthis/internal/models"
)

// DefaultDataDir is the directory captions are written to, relative to
// the working directory
const DefaultDataDir = "data"

// recordDir is created next to a video by the pipeline command
const recordDir = "captions"

// CaptionStore writes captions under a data directory
type CaptionStore struct {
	fs      afero.Fs
	baseDir string
	mu      sync.Mutex
}

// NewCaptionStore creates a store rooted at baseDir. The directory is
// created on first write.
func NewCaptionStore(fs afero.Fs, baseDir string) *CaptionStore {
	if baseDir == "" {
		baseDir = DefaultDataDir
	}
	return &CaptionStore{
		fs:      fs,
		baseDir: baseDir,
	}
}

// CaptionPath returns the file captions of kind are written to
func (s *CaptionStore) CaptionPath(kind models.AssetKind) string {
	return filepath.Join(s.baseDir, models.CaptionFileName(kind))
}

// SaveCaption writes text, as is, to the caption file for kind, replacing
// any previous caption
func (s *CaptionStore) SaveCaption(kind models.AssetKind, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := s.CaptionPath(kind)
	if err := afero.WriteFile(s.fs, path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write caption: %w", err)
	}

	return path, nil
}

// RecordPath returns where the caption record of videoPath is written:
// captions/<stem>_caption.json in the video's directory
func RecordPath(videoPath string) string {
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(videoPath), recordDir, stem+"_caption.json")
}

// SaveRecord writes rec as indented JSON next to videoPath
func (s *CaptionStore) SaveRecord(videoPath string, rec models.CaptionRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := RecordPath(videoPath)
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create captions directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal caption record: %w", err)
	}

	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write caption record: %w", err)
	}

	return path, nil
}
