package client

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dm/mistinfo/internal/model"
)

// MistClient defines the interface for reading site resources from the Mist API.
type MistClient interface {
	GetResource(ctx context.Context, kind model.ResourceKind) (model.Value, error)
	BaseURL() string
	SiteID() string
}

// ClientConfig holds configuration for DefaultClient.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://api.mist.com/api/v1/".
	// Resource URLs are built by plain concatenation, so it should end in "/".
	BaseURL            string
	Token              string
	SiteID             string
	InsecureSkipVerify bool
	// RequestTimeout of zero leaves the transport default in place.
	RequestTimeout time.Duration
}

// DefaultClient implements MistClient using the standard net/http package.
// A single http.Client is shared by all requests so concurrent fetches
// reuse one connection pool.
type DefaultClient struct {
	http   *http.Client
	config ClientConfig
}

// NewDefaultClient constructs a DefaultClient from the given config.
// Returns an error if BaseURL, Token or SiteID is empty.
func NewDefaultClient(cfg ClientConfig) (*DefaultClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("Token is required")
	}
	if cfg.SiteID == "" {
		return nil, fmt.Errorf("SiteID is required")
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec
		}
	}

	return &DefaultClient{
		http: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		config: cfg,
	}, nil
}

// BaseURL returns the configured API root.
func (c *DefaultClient) BaseURL() string {
	return c.config.BaseURL
}

// SiteID returns the configured site identifier.
func (c *DefaultClient) SiteID() string {
	return c.config.SiteID
}

// doGet performs an authenticated GET on url and returns the response body.
// Any status other than 200 is reported as a *StatusError.
func (c *DefaultClient) doGet(ctx context.Context, kind model.ResourceKind, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Token "+c.config.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	const maxResponseBytes = 32 * 1024 * 1024
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("response body exceeds %d MB limit", maxResponseBytes/(1024*1024))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			Kind:       kind,
			StatusCode: resp.StatusCode,
			Body:       truncate(body, 200),
		}
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
