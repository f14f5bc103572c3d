package render

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// Renderer renders a page and returns a traversable document
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*goquery.Document, error)
	Close() error
}

// parseDocument parses HTML from r and records pageURL as the document URL
func parseDocument(r io.Reader, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page url: %w", err)
	}
	doc.Url = u

	return doc, nil
}
