package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sourcegraph/conc/pool"

	"github.com/pfrederiksen/slieker-ics/internal/event"
	"github.com/pfrederiksen/slieker-ics/internal/logger"
	"github.com/pfrederiksen/slieker-ics/internal/render"
)

const (
	ProgramURL     = "https://sliekerfilm.nl/programma/"
	DefaultWorkers = 8
)

// ErrNilSink is returned when Scrape or ScrapeDocument is called without a sink
var ErrNilSink = errors.New("scraper: nil sink")

// Sink receives each scraped event. Calls are serialised, in completion order.
type Sink func(*event.Event)

// Scraper handles rendering and parsing the program page
type Scraper struct {
	renderer      render.Renderer
	url           string
	loc           *time.Location
	now           func() time.Time
	workers       int
	pageTimeout   time.Duration
	detailTimeout time.Duration
	metrics       *logger.Metrics
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL overrides the program page URL
func WithURL(u string) Option {
	return func(s *Scraper) {
		if u != "" {
			s.url = u
		}
	}
}

// WithLocation sets the venue time zone used for showtimes
func WithLocation(loc *time.Location) Option {
	return func(s *Scraper) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now for year inference
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithWorkers bounds the number of concurrent detail page fetches
func WithWorkers(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPageTimeout bounds the program page render
func WithPageTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.pageTimeout = d
	}
}

// WithDetailTimeout bounds each detail page render
func WithDetailTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.detailTimeout = d
	}
}

// WithMetrics records counters and timings on m instead of a private tracker
func WithMetrics(m *logger.Metrics) Option {
	return func(s *Scraper) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New creates a new Scraper instance
func New(r render.Renderer, opts ...Option) *Scraper {
	s := &Scraper{
		renderer: r,
		url:      ProgramURL,
		loc:      time.Local,
		now:      time.Now,
		workers:  DefaultWorkers,
		metrics:  logger.NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape renders the program page and delivers one event per showing to sink.
// It returns the number of events delivered.
func (s *Scraper) Scrape(ctx context.Context, sink Sink) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}

	pageCtx := ctx
	if s.pageTimeout > 0 {
		var cancel context.CancelFunc
		pageCtx, cancel = context.WithTimeout(ctx, s.pageTimeout)
		defer cancel()
	}

	doc, err := s.renderer.Render(pageCtx, s.url)
	if err != nil {
		return 0, fmt.Errorf("rendering program page: %w", err)
	}

	logger.Info("Rendered program page", logger.Fields{
		"url":   s.url,
		"cards": doc.Find(CardSelector).Length(),
	})

	return s.ScrapeDocument(ctx, doc, sink)
}

// showing is a card that passed extraction and date parsing
type showing struct {
	fragment Fragment
	start    time.Time
}

// ScrapeDocument extracts events from an already rendered program page.
// Cards with missing fields or malformed times are skipped; an unknown month
// aborts the run before any detail page is fetched.
func (s *Scraper) ScrapeDocument(ctx context.Context, doc *goquery.Document, sink Sink) (int, error) {
	if sink == nil {
		return 0, ErrNilSink
	}
	now := s.now().In(s.loc)

	var (
		showings []showing
		fatal    error
	)
	doc.Find(CardSelector).EachWithBreak(func(i int, card *goquery.Selection) bool {
		s.metrics.IncrCounter("fragments.seen")

		frag, err := ExtractFragment(card, doc.Url)
		if err != nil {
			s.skip(i, frag, err)
			return true
		}

		start, err := event.ParseDate(frag.Day, frag.Clock, now)
		if err != nil {
			var monthErr *event.UnknownMonthError
			if errors.As(err, &monthErr) {
				fatal = fmt.Errorf("card %d (%s): %w", i, frag.Title, err)
				return false
			}
			s.skip(i, frag, err)
			return true
		}

		showings = append(showings, showing{fragment: frag, start: start})
		return true
	})
	if fatal != nil {
		return 0, fatal
	}

	var (
		mu        sync.Mutex
		delivered int
	)
	p := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, sh := range showings {
		p.Go(func(ctx context.Context) error {
			runtime := s.runtimeOrZero(ctx, sh.fragment.URL)
			evt := event.NewEvent(
				sh.fragment.Title,
				sh.start,
				runtime,
				sh.fragment.URL,
				sh.fragment.Description(),
				sh.fragment.SoldOut(),
			)

			mu.Lock()
			defer mu.Unlock()
			sink(evt)
			delivered++
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return delivered, err
	}

	if err := ctx.Err(); err != nil {
		return delivered, fmt.Errorf("scrape interrupted: %w", err)
	}
	return delivered, nil
}

func (s *Scraper) skip(index int, frag Fragment, err error) {
	s.metrics.IncrCounter("fragments.skipped")
	logger.Debug("Skipping card", logger.Fields{
		"index":  index,
		"title":  frag.Title,
		"reason": err.Error(),
	})
}
