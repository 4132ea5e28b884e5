package api

import (
	"fmt"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	apierrors "github.com/diogo/captionthis/internal/errors"
	"github.com/diogo/captionthis/internal/models"
)

// DefaultTimeoutSeconds bounds a single request, uploads included
const DefaultTimeoutSeconds = 300

// ClientConfig is everything the client needs to reach the upstream API
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatURL        string
	TimeoutSeconds int
}

// withDefaults fills unset fields
func (c ClientConfig) withDefaults() ClientConfig {
	if c.BaseURL == "" {
		c.BaseURL = models.DefaultBaseURL
	}
	if c.ChatURL == "" {
		c.ChatURL = models.DefaultChatURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.ChatURL = strings.TrimRight(c.ChatURL, "/")
	return c
}

// VisionClient is the client for the vision API
type VisionClient struct {
	httpClient tls_client.HttpClient
	fs         afero.Fs
	log        logrus.FieldLogger
	apiKey     string
	baseURL    string
	chatURL    string
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*VisionClient)

// WithHTTPClient replaces the transport, mainly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *VisionClient) {
		c.httpClient = httpClient
	}
}

// WithFs sets the filesystem uploads are read from
func WithFs(fs afero.Fs) ClientOption {
	return func(c *VisionClient) {
		c.fs = fs
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *VisionClient) {
		c.log = log
	}
}

// NewClient creates a new VisionClient
func NewClient(cfg ClientConfig, opts ...ClientOption) (*VisionClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	cfg = cfg.withDefaults()

	client := &VisionClient{
		fs:      afero.NewOsFs(),
		log:     logrus.StandardLogger(),
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		chatURL: cfg.ChatURL,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(cfg.TimeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close releases idle connections. Further requests fail.
func (c *VisionClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *VisionClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

