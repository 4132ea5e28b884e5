package api

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/diogo/captionthis/internal/models"
)

func TestNormalizeAssets_Videos(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		want           []models.AssetRecord
		wantHasResults bool
	}{
		{
			name: "single video",
			raw:  `{"results":[{"video_id":"v1","metadata":{"video_name":"clip"}}]}`,
			want: []models.AssetRecord{
				{Kind: models.AssetVideo, ID: "v1", DisplayName: "clip", Locator: "v1"},
			},
			wantHasResults: true,
		},
		{
			name: "empty video_id is dropped",
			raw:  `{"results":[{"video_id":"","metadata":{"video_name":"x"}},{"video_id":"v2"}]}`,
			want: []models.AssetRecord{
				{Kind: models.AssetVideo, ID: "v2", Locator: "v2"},
			},
			wantHasResults: true,
		},
		{
			name: "order is preserved and status is carried",
			raw: `{"results":[
				{"video_id":"b","indexing_status":"indexing"},
				{"video_id":"a","indexing_status":"indexed","metadata":{"video_name":"A"}},
				{"metadata":{"video_name":"no id"}},
				{"video_id":"c","metadata":"not an object"}
			]}`,
			want: []models.AssetRecord{
				{Kind: models.AssetVideo, ID: "b", Locator: "b", Status: "indexing"},
				{Kind: models.AssetVideo, ID: "a", DisplayName: "A", Locator: "a", Status: "indexed"},
				{Kind: models.AssetVideo, ID: "c", Locator: "c"},
			},
			wantHasResults: true,
		},
		{
			name:           "empty results",
			raw:            `{"results":[]}`,
			want:           []models.AssetRecord{},
			wantHasResults: true,
		},
		{
			name:           "empty object",
			raw:            `{}`,
			want:           []models.AssetRecord{},
			wantHasResults: false,
		},
		{
			name:           "results is not an array",
			raw:            `{"results":{"video_id":"v1"}}`,
			want:           []models.AssetRecord{},
			wantHasResults: false,
		},
		{
			name:           "non-object elements are skipped",
			raw:            `{"results":["v1",1,null,{"video_id":"v2"}]}`,
			want:           []models.AssetRecord{{Kind: models.AssetVideo, ID: "v2", Locator: "v2"}},
			wantHasResults: true,
		},
		{
			name:           "not json",
			raw:            `<html>502</html>`,
			want:           []models.AssetRecord{},
			wantHasResults: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAssets([]byte(tt.raw), models.AssetVideo)

			if diff := cmp.Diff(tt.want, got.Records); diff != "" {
				t.Errorf("Records mismatch (-want +got):\n%s", diff)
			}
			if got.HasResults != tt.wantHasResults {
				t.Errorf("HasResults = %v, want %v", got.HasResults, tt.wantHasResults)
			}
			if string(got.Raw) != tt.raw {
				t.Error("Raw should keep the original body")
			}
			if got.Kind != models.AssetVideo {
				t.Errorf("Kind = %v", got.Kind)
			}
		})
	}
}

func TestNormalizeAssets_Images(t *testing.T) {
	raw := `{"results":[
		{"image_id":"i1","image_url":"https://x/1.png"},
		{"image_id":"i2","image_url":""},
		{"image_url":"https://x/3.jpg"},
		{"image_id":"i4"}
	]}`

	got := NormalizeAssets([]byte(raw), models.AssetImage)

	want := []models.AssetRecord{
		{Kind: models.AssetImage, ID: "i1", DisplayName: "https://x/1.png", Locator: "https://x/1.png"},
		{Kind: models.AssetImage, ID: "", DisplayName: "https://x/3.jpg", Locator: "https://x/3.jpg"},
	}
	if diff := cmp.Diff(want, got.Records); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}
	if got.Len() != 2 {
		t.Errorf("Len() = %d, want 2", got.Len())
	}
}

func TestNormalizeAssets_CountNeverExceedsInput(t *testing.T) {
	inputs := []string{
		`{"results":[{"video_id":"a"},{"video_id":"b"},{"video_id":""}]}`,
		`{"results":[{},{},{}]}`,
		`{"results":[{"video_id":"a"}]}`,
	}

	for _, raw := range inputs {
		doc, _ := ParseDocument([]byte(raw))
		n := len(ArrayField(doc, PathResults))
		for _, kind := range []models.AssetKind{models.AssetVideo, models.AssetImage} {
			if got := len(NormalizeAssets([]byte(raw), kind).Records); got > n {
				t.Errorf("NormalizeAssets(%s, %v) produced %d records from %d elements", raw, kind, got, n)
			}
		}
	}
}

func TestNormalizeAssets_EmptyInput(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(""), []byte("null")} {
		got := NormalizeAssets(raw, models.AssetImage)
		if got.Records == nil || got.Len() != 0 || got.HasResults {
			t.Errorf("NormalizeAssets(%q) = %+v, want empty list", raw, got)
		}
	}
}
