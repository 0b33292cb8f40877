// Package grobid produces sidecar metadata entries by sending PDF headers
// to a local GROBID service.
package grobid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the conventional local GROBID address.
	DefaultBaseURL = "http://localhost:8070"

	// DefaultTimeout bounds a single header-processing request.
	DefaultTimeout = 120 * time.Second

	// requestsPerSecond keeps a batch from flooding the service.
	requestsPerSecond = 10
)

// Client is a rate-limited HTTP client for the GROBID API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the GROBID service at baseURL. An empty
// baseURL selects the local default.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAlive checks the service health endpoint.
func (c *Client) IsAlive(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/isalive", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("reaching GROBID at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	s := strings.ToLower(strings.TrimSpace(string(body)))
	if resp.StatusCode != http.StatusOK || !(strings.Contains(s, "true") || strings.Contains(s, "alive") || s == "ok") {
		return fmt.Errorf("GROBID at %s is not alive (status %d)", c.baseURL, resp.StatusCode)
	}
	return nil
}

// ProcessHeader submits a PDF for header extraction and returns the TEI
// XML response.
func (c *Client) ProcessHeader(ctx context.Context, pdfPath string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pdfBytes, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", pdfPath, err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("input", filepath.Base(pdfPath))
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(pdfBytes); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	url := c.baseURL + "/api/processHeaderDocument?consolidateHeader=0&start=1&end=2"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("processing header for %s: %w", filepath.Base(pdfPath), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GROBID returned status %d for %s", resp.StatusCode, filepath.Base(pdfPath))
	}

	return io.ReadAll(resp.Body)
}
