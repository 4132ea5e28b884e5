package errors

import "errors"

// GetHTTPStatus returns the HTTP status carried by err, or 0
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or ""
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the upstream body carried by err, or ""
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// IsAuthError reports a rejected API key
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsNotFound reports a 404 from the upstream API
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNetworkError reports a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports a wait that gave up
func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsUploadError reports a local upload failure
func IsUploadError(err error) bool {
	var uploadErr *UploadError
	return errors.As(err, &uploadErr)
}

// IsConfigError reports a configuration failure, including a missing key
func IsConfigError(err error) bool {
	if errors.Is(err, ErrMissingAPIKey) {
		return true
	}
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsParseError reports a response missing a required field
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}
