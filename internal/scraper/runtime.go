package scraper

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/slieker-ics/internal/logger"
)

var (
	// Separators between genre, country and length on the detail page
	dashPattern    = regexp.MustCompile(`\s*[-–—]\s*`)
	minutesPattern = regexp.MustCompile(`^(\d+)\s*min\.?$`)
)

// RuntimeNotFoundError is returned when a detail page has no length element
type RuntimeNotFoundError struct {
	URL string
}

func (e *RuntimeNotFoundError) Error() string {
	return fmt.Sprintf("no runtime element on %s", e.URL)
}

// RuntimeFormatError is returned when the length text has no "<n> min" segment
type RuntimeFormatError struct {
	Text string
}

func (e *RuntimeFormatError) Error() string {
	return fmt.Sprintf("unrecognised runtime text %q", e.Text)
}

// ParseRuntime extracts minutes from length text such as "Drama – 102 min.".
// The leading segment is never the runtime; the first later segment that
// reads "<n> min" is.
func ParseRuntime(text string) (int, error) {
	segments := dashPattern.Split(strings.TrimSpace(text), -1)
	if len(segments) < 2 {
		return 0, &RuntimeFormatError{Text: text}
	}

	for _, segment := range segments[1:] {
		matches := minutesPattern.FindStringSubmatch(strings.TrimSpace(segment))
		if matches == nil {
			continue
		}
		minutes, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, &RuntimeFormatError{Text: text}
		}
		return minutes, nil
	}

	return 0, &RuntimeFormatError{Text: text}
}

// ResolveRuntime renders a film's detail page and returns its runtime in minutes
func (s *Scraper) ResolveRuntime(ctx context.Context, detailURL string) (int, error) {
	if s.detailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.detailTimeout)
		defer cancel()
	}

	started := time.Now()
	doc, err := s.renderer.Render(ctx, detailURL)
	s.metrics.RecordTiming("runtime.fetch", time.Since(started))
	if err != nil {
		return 0, fmt.Errorf("rendering detail page: %w", err)
	}

	length := doc.Find(LengthSelector).First()
	if length.Length() == 0 {
		return 0, &RuntimeNotFoundError{URL: detailURL}
	}

	return ParseRuntime(strings.TrimSpace(length.Text()))
}

// runtimeOrZero resolves a runtime, treating any failure as unknown
func (s *Scraper) runtimeOrZero(ctx context.Context, detailURL string) int {
	minutes, err := s.ResolveRuntime(ctx, detailURL)
	if err != nil {
		s.metrics.IncrCounter("runtime.unresolved")
		logger.Warn("Runtime unresolved, using zero duration", logger.Fields{
			"url":   detailURL,
			"error": err.Error(),
		})
		return 0
	}
	return minutes
}
