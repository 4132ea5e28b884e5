package models

import "time"

// CaptionShape names the upstream response shape a caption came from
type CaptionShape int

const (
	// ShapeSections is the /qa/chat shape: chat_response holds a JSON
	// document encoded as a string, whose sections[].markdown are joined.
	ShapeSections CaptionShape = iota
	// ShapeCompletion is the chat-completions shape: choices[0].message.content.
	ShapeCompletion
)

// String returns the shape name
func (s CaptionShape) String() string {
	switch s {
	case ShapeSections:
		return "sections"
	case ShapeCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// CaptionResult is the extracted caption plus the body it came from.
// Text is empty when no known shape matched.
type CaptionResult struct {
	Shape CaptionShape
	Text  string
	Raw   []byte
}

// Empty reports whether the caller should fall back to displaying Raw
func (c *CaptionResult) Empty() bool {
	return c == nil || c.Text == ""
}

// CaptionRecord is the file written by the pipeline command
type CaptionRecord struct {
	VideoID   string `json:"video_id"`
	Caption   string `json:"caption"`
	Timestamp string `json:"timestamp"`
}

// CaptionTimestampLayout is the timestamp format of CaptionRecord
const CaptionTimestampLayout = "2006-01-02 15:04:05"

// NewCaptionRecord builds a record stamped with t
func NewCaptionRecord(videoID, caption string, t time.Time) CaptionRecord {
	return CaptionRecord{
		VideoID:   videoID,
		Caption:   caption,
		Timestamp: t.Format(CaptionTimestampLayout),
	}
}

// CaptionFileName returns the file name captions of the given kind are saved under
func CaptionFileName(kind AssetKind) string {
	if kind == AssetImage {
		return "image_captioned.json"
	}
	return "video_captioned.json"
}
