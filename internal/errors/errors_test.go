package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(400, "/videos/list", "request failed")

	expected := "API error [400] at /videos/list: request failed"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "/videos/list", "request failed")
	if noStatus.Error() != "API error at /videos/list: request failed" {
		t.Errorf("unexpected message without status: %s", noStatus.Error())
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status   int
		target   error
		expected bool
	}{
		{401, ErrAuthFailed, true},
		{403, ErrAuthFailed, true},
		{500, ErrAuthFailed, false},
		{404, ErrNotFound, true},
		{400, ErrNotFound, false},
		{500, &APIError{}, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%v", tt.status, tt.target), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", NewAPIError(tt.status, "/x", "failed"))
			if got := errors.Is(err, tt.target); got != tt.expected {
				t.Errorf("errors.Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := NewNetworkErrorWithEndpoint("list videos", "/videos/list", cause)

	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
	expected := "network error during list videos (/videos/list): dial tcp: no such host"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	bare := NewNetworkError("upload", cause)
	if bare.Error() != "network error during upload: dial tcp: no such host" {
		t.Errorf("unexpected message: %s", bare.Error())
	}
}

func TestTimeoutError(t *testing.T) {
	if got := NewTimeoutError("").Error(); got != "request timed out" {
		t.Errorf("Error() = %s", got)
	}
	if got := NewTimeoutError("video not indexed").Error(); got != "timed out: video not indexed" {
		t.Errorf("Error() = %s", got)
	}
}

func TestUploadError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewUploadError("clip.mp4", "file not found", cause)

	if err.Error() != "upload of clip.mp4 failed: file not found" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("UploadError should unwrap to its cause")
	}
	if NewUploadError("", "empty path", nil).Error() != "upload failed: empty path" {
		t.Error("unexpected message without file name")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("no video_id in response", "video_id")

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
	if !errors.Is(err, &ParseError{}) {
		t.Error("ParseError should match another ParseError")
	}
	if errors.Is(err, ErrAuthFailed) {
		t.Error("ParseError should not match ErrAuthFailed")
	}
	expected := `parse error: no video_id in response (path "video_id")`
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewConfigError("api_key", "failed to read .env", cause)

	if err.Error() != "configuration error (api_key): failed to read .env" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("ConfigError should unwrap")
	}
	if !IsConfigError(err) {
		t.Error("IsConfigError should match ConfigError")
	}
	if !IsConfigError(fmt.Errorf("startup: %w", ErrMissingAPIKey)) {
		t.Error("IsConfigError should match ErrMissingAPIKey")
	}
}

func TestHelpers(t *testing.T) {
	apiErr := fmt.Errorf("op: %w", NewAPIErrorWithBody(502, "/qa/chat", "bad gateway", `{"detail":"upstream"}`))
	netErr := NewNetworkErrorWithEndpoint("caption", "/qa/chat", errors.New("reset"))

	if GetHTTPStatus(apiErr) != 502 {
		t.Errorf("GetHTTPStatus = %d", GetHTTPStatus(apiErr))
	}
	if GetHTTPStatus(netErr) != 0 {
		t.Error("network errors carry no status")
	}
	if GetEndpoint(apiErr) != "/qa/chat" || GetEndpoint(netErr) != "/qa/chat" {
		t.Error("GetEndpoint should read both API and network errors")
	}
	if GetResponseBody(apiErr) != `{"detail":"upstream"}` {
		t.Errorf("GetResponseBody = %q", GetResponseBody(apiErr))
	}
	if !IsNetworkError(netErr) || IsNetworkError(apiErr) {
		t.Error("IsNetworkError mismatch")
	}
	if !IsAuthError(NewAPIError(401, "/x", "denied")) {
		t.Error("IsAuthError should match 401")
	}
	if !IsNotFound(NewAPIError(404, "/x", "missing")) {
		t.Error("IsNotFound should match 404")
	}
	if !IsTimeoutError(NewTimeoutError("x")) || !IsUploadError(NewUploadError("", "x", nil)) {
		t.Error("type helpers mismatch")
	}
	if !IsParseError(NewParseError("x", "")) {
		t.Error("IsParseError mismatch")
	}
}
