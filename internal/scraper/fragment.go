package scraper

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ErrNoTitle    = errors.New("card has no title")
	ErrNoShowtime = errors.New("card has no showtime")
	ErrNoLink     = errors.New("card has no detail link")
)

// Fragment holds the raw text pulled from one film card
type Fragment struct {
	Title  string
	Day    string // e.g. "za 12 oktober"
	Clock  string // e.g. "20:30"
	URL    string
	Status string
	Tag    string
}

// ExtractFragment reads a film card. base resolves relative detail links and may be nil.
// On error the fields read so far are returned alongside it.
func ExtractFragment(card *goquery.Selection, base *url.URL) (Fragment, error) {
	var f Fragment

	heading := card.Find(HeadingSelector).First()
	f.Title = strings.TrimSpace(heading.Text())
	if heading.Length() == 0 || f.Title == "" {
		return f, ErrNoTitle
	}

	prose := strings.TrimSpace(card.Find(ProseSelector).First().Text())
	// Segments after the clock (room, language) are ignored
	parts := strings.Split(prose, showtimeSeparator)
	f.Day = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		f.Clock = strings.TrimSpace(parts[1])
	}
	// Cards for films without a scheduled showing carry only the day or a teaser
	if f.Clock == "" {
		return f, ErrNoShowtime
	}

	href, ok := card.Find(OverlaySelector).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return f, ErrNoLink
	}
	f.URL = resolveLink(base, href)

	f.Status = strings.TrimSpace(card.Find(StatusSelector).First().Text())
	f.Tag = strings.TrimSpace(card.Find(TagSelector).First().Text())

	return f, nil
}

// SoldOut reports whether the card's status carries the sold-out marker
func (f Fragment) SoldOut() bool {
	return strings.Contains(f.Status, SoldOutMarker)
}

// Description maps the card's tag to a readable description, or "" for unknown tags
func (f Fragment) Description() string {
	switch {
	case strings.Contains(f.Tag, LastChanceMarker):
		return "Last chance"
	case strings.Contains(f.Tag, OneTimeMarker):
		return "One-time showing"
	default:
		return ""
	}
}

func resolveLink(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
