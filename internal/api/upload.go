package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// imageUploadMetadata asks the service to index the uploaded image
const imageUploadMetadata = `{"requests":[{"indexing_config":{"index":true},"metadata":{}}]}`

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// formField is a plain text multipart field
type formField struct {
	name  string
	value string
}

// VideoContentType returns the MIME type sent for a video upload
func VideoContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	default:
		return "video/mp4"
	}
}

// ImageContentType returns image/png for .png files and image/jpeg otherwise
func ImageContentType(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

// uploadFile streams path as fileField plus fields to base+endpoint
func (c *VisionClient) uploadFile(
	ctx context.Context,
	endpoint string,
	fileField string,
	path string,
	contentType string,
	fields []formField,
) (*models.UploadOutcome, error) {
	fileName := filepath.Base(path)

	if strings.TrimSpace(path) == "" {
		return nil, apierrors.NewUploadError("", "file path cannot be empty", nil)
	}

	info, err := c.fs.Stat(path)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "file not found", err)
	}
	if info.IsDir() {
		return nil, apierrors.NewUploadError(fileName, "path is a directory", nil)
	}

	file, err := c.fs.Open(path)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to open file", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fileField), quoteEscaper.Replace(fileName)))
	h.Set("Content-Type", contentType)

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to create form file", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to write file data", err)
	}

	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, apierrors.NewUploadError(fileName, "failed to write form field "+field.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, apierrors.NewUploadError(fileName, "failed to finish form", err)
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.log.WithField("file", fileName).WithField("size", info.Size()).Debug("uploading")

	return c.passThrough(req, endpoint, "upload "+fileName)
}
