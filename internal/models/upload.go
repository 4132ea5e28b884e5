package models

// UploadOutcome passes through the upstream response of an upload or delete
type UploadOutcome struct {
	StatusCode int
	Body       []byte
}

// IsSuccess reports a 2xx status
func (o *UploadOutcome) IsSuccess() bool {
	return o != nil && o.StatusCode >= 200 && o.StatusCode < 300
}
