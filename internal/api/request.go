package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/sirupsen/logrus"

	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// maxErrorBody caps how much of a failed response is kept for display
const maxErrorBody = 4096

// postJSON sends body as JSON to host+endpoint and returns the response body
func (c *VisionClient) postJSON(ctx context.Context, host, endpoint, operation string, body interface{}) ([]byte, int, error) {
	req, err := newJSONRequest(ctx, host+endpoint, operation, body)
	if err != nil {
		return nil, 0, err
	}
	return c.send(req, endpoint, operation)
}

func newJSONRequest(ctx context.Context, url, operation string, body interface{}) (*fhttp.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", operation, err)
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	return req, nil
}

// send executes req and turns any non-2xx status into an APIError
func (c *VisionClient) send(req *fhttp.Request, endpoint, operation string) ([]byte, int, error) {
	body, status, err := c.exchange(req, endpoint, operation)
	if err != nil {
		return body, status, err
	}
	if status < 200 || status > 299 {
		return body, status, statusError(status, endpoint, operation, body)
	}
	return body, status, nil
}

// passThrough executes req and hands back the upstream response whatever its
// status. Only a rejected API key is still an error.
func (c *VisionClient) passThrough(req *fhttp.Request, endpoint, operation string) (*models.UploadOutcome, error) {
	body, status, err := c.exchange(req, endpoint, operation)
	if err != nil {
		return nil, err
	}
	if status == fhttp.StatusUnauthorized || status == fhttp.StatusForbidden {
		return nil, statusError(status, endpoint, operation, body)
	}
	if status < 200 || status > 299 {
		c.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   status,
		}).Debug(operation + " returned an error status")
	}
	return &models.UploadOutcome{StatusCode: status, Body: body}, nil
}

func statusError(status int, endpoint, operation string, body []byte) error {
	errorBody := body
	if len(errorBody) > maxErrorBody {
		errorBody = errorBody[:maxErrorBody]
	}
	return apierrors.NewAPIErrorWithBody(status, endpoint, operation+" failed", string(errorBody))
}

// exchange attaches the API key and executes req. Only transport failures
// are errors here.
func (c *VisionClient) exchange(req *fhttp.Request, endpoint, operation string) ([]byte, int, error) {
	if c.IsClosed() {
		return nil, 0, apierrors.ErrClientClosed
	}

	req.Header.Set(models.HeaderAPIKey, c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"error":    err,
		}).Error("request failed")
		return nil, 0, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	c.log.WithFields(logrus.Fields{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug(operation)

	return body, resp.StatusCode, nil
}
