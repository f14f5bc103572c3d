package render

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const DefaultTimeout = 30 * time.Second

// HTTP renders pages with a plain GET request. No scripts or stylesheets are
// ever loaded, which matches what the program page needs.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// NewHTTP creates an HTTP renderer. A nil client gets a default one with DefaultTimeout.
func NewHTTP(client *http.Client, userAgent string) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTP{
		client:    client,
		userAgent: userAgent,
	}
}

// Render fetches pageURL and parses the response body
func (h *HTTP) Render(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseDocument(resp.Body, pageURL)
}

// Close is a no-op; idle connections are left to the client
func (h *HTTP) Close() error {
	return nil
}
