package models

import "fmt"

// AssetKind distinguishes the two kinds of assets tracked by the upstream API
type AssetKind int

const (
	AssetVideo AssetKind = iota
	AssetImage
)

// String returns the lowercase kind name
func (k AssetKind) String() string {
	switch k {
	case AssetVideo:
		return "video"
	case AssetImage:
		return "image"
	default:
		return "unknown"
	}
}

// AssetRecord is one normalized entry of a list response.
// Locator is what later calls use to reference the asset: the id for
// videos, the URL for images.
type AssetRecord struct {
	Kind        AssetKind
	ID          string
	DisplayName string
	Locator     string
	// Status is the video indexing status, empty for images
	Status string
}

// Label returns a single-line description used by selection prompts
func (r AssetRecord) Label() string {
	switch r.Kind {
	case AssetVideo:
		name := r.DisplayName
		if name == "" {
			name = "N/A"
		}
		return fmt.Sprintf("VIDEO %s  •  %s", r.ID, name)
	default:
		id := r.ID
		if id == "" {
			id = "N/A"
		}
		return fmt.Sprintf("IMAGE %s  •  %s", id, r.Locator)
	}
}

// AssetList is the result of normalizing a list response
type AssetList struct {
	Kind    AssetKind
	Records []AssetRecord
	// HasResults is false when the response had no results array; callers
	// should then show Raw instead of a table.
	HasResults bool
	Raw        []byte
}

// Len returns the number of records
func (l *AssetList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Records)
}
