package api

import (
	"github.com/tidwall/gjson"

	"github.com/diogo/captionthis/internal/models"
)

// NormalizeAssets converts a list response into uniform asset records.
// Elements missing their key field are skipped: video_id for videos,
// image_url for images. Input order is kept.
func NormalizeAssets(raw []byte, kind models.AssetKind) models.AssetList {
	list := models.AssetList{
		Kind:    kind,
		Records: []models.AssetRecord{},
		Raw:     raw,
	}

	doc, ok := ParseDocument(raw)
	if !ok {
		return list
	}
	list.HasResults = Field(doc, PathResults, KindArray, gjson.Result{}).Exists()

	for _, item := range ArrayField(doc, PathResults) {
		record, keep := normalizeItem(item, kind)
		if keep {
			list.Records = append(list.Records, record)
		}
	}

	return list
}

func normalizeItem(item gjson.Result, kind models.AssetKind) (models.AssetRecord, bool) {
	switch kind {
	case models.AssetVideo:
		id := StringField(item, PathVideoID, "")
		if id == "" {
			return models.AssetRecord{}, false
		}
		return models.AssetRecord{
			Kind:        models.AssetVideo,
			ID:          id,
			DisplayName: StringField(item, PathVideoName, ""),
			Locator:     id,
			Status:      StringField(item, PathIndexingStatus, ""),
		}, true

	case models.AssetImage:
		url := StringField(item, PathImageURL, "")
		if url == "" {
			return models.AssetRecord{}, false
		}
		return models.AssetRecord{
			Kind:        models.AssetImage,
			ID:          StringField(item, PathImageID, ""),
			DisplayName: url,
			Locator:     url,
		}, true
	}

	return models.AssetRecord{}, false
}
