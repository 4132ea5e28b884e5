package api

import (
	"bytes"
	"io"
	"net/url"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
)

// MockHttpClient is a mock implementation of tls_client.HttpClient that
// records every request it is asked to send
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	Requests     []*fhttp.Request
	Bodies       [][]byte
	ClosedIdle   bool
	responseBody []byte
}

// LastRequest returns the most recent request, or nil
func (m *MockHttpClient) LastRequest() *fhttp.Request {
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}

// LastBody returns the body of the most recent request
func (m *MockHttpClient) LastBody() []byte {
	if len(m.Bodies) == 0 {
		return nil
	}
	return m.Bodies[len(m.Bodies)-1]
}

func (m *MockHttpClient) GetCookies(u *url.URL) []*fhttp.Cookie {
	return nil
}

func (m *MockHttpClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

func (m *MockHttpClient) SetCookieJar(jar fhttp.CookieJar) {}

func (m *MockHttpClient) GetCookieJar() fhttp.CookieJar {
	return nil
}

func (m *MockHttpClient) SetProxy(proxyUrl string) error {
	return nil
}

func (m *MockHttpClient) GetProxy() string {
	return ""
}

func (m *MockHttpClient) SetFollowRedirect(followRedirect bool) {}

func (m *MockHttpClient) GetFollowRedirect() bool {
	return false
}

func (m *MockHttpClient) CloseIdleConnections() {
	m.ClosedIdle = true
}

func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	m.Requests = append(m.Requests, req)
	m.Bodies = append(m.Bodies, body)

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Response != nil {
		m.Response.Body = io.NopCloser(bytes.NewReader(m.responseBody))
	}
	return m.Response, nil
}

func (m *MockHttpClient) Get(url string) (*fhttp.Response, error) {
	return m.Response, m.Err
}

func (m *MockHttpClient) Head(url string) (*fhttp.Response, error) {
	return m.Response, m.Err
}

func (m *MockHttpClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	return m.Response, m.Err
}

func (m *MockHttpClient) GetBandwidthTracker() bandwidth.BandwidthTracker {
	return nil
}

// NewMockHttpClient creates a new MockHttpClient answering every request
// with body and statusCode
func NewMockHttpClient(body []byte, statusCode int) *MockHttpClient {
	return &MockHttpClient{
		Response: &fhttp.Response{
			StatusCode: statusCode,
			Header:     make(fhttp.Header),
		},
		responseBody: body,
	}
}

// NewMockHttpClientWithError creates a new MockHttpClient that returns an error
func NewMockHttpClientWithError(err error) *MockHttpClient {
	return &MockHttpClient{Err: err}
}

// newTestClient builds a VisionClient around mock with an in-memory filesystem
func newTestClient(mock *MockHttpClient, fs afero.Fs) (*VisionClient, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	if fs == nil {
		fs = afero.NewMemMapFs()
	}

	client, err := NewClient(ClientConfig{
		APIKey:  "test-key",
		BaseURL: "https://vision.test",
		ChatURL: "https://chat.test",
	}, WithHTTPClient(mock), WithFs(fs), WithLogger(logger))
	if err != nil {
		panic(err)
	}
	return client, hook
}
