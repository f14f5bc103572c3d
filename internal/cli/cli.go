package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/slieker-ics/internal/calendar"
	"github.com/pfrederiksen/slieker-ics/internal/config"
	"github.com/pfrederiksen/slieker-ics/internal/logger"
	"github.com/pfrederiksen/slieker-ics/internal/render"
	"github.com/pfrederiksen/slieker-ics/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds collaborators that tests replace
type options struct {
	fs       afero.Fs
	config   *config.Config
	renderer render.Renderer
	now      func() time.Time
}

// Option customises the root command
type Option func(*options)

// WithFs sets the filesystem the calendar is written to
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithConfig uses cfg instead of loading configuration from the environment
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.config = &cfg }
}

// WithRenderer uses r instead of building one from configuration
func WithRenderer(r render.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithClock replaces time.Now for year inference
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewRootCmd creates the root command
func NewRootCmd(opts ...Option) *cobra.Command {
	o := &options{
		fs:  afero.NewOsFs(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}

	cmd := &cobra.Command{
		Use:   "slieker-ics [output]",
		Short: "Export the Slieker Film program as an iCalendar file",
		Long: `Scrapes the Slieker Film program page and writes every scheduled showing
to an iCalendar file. The output path defaults to out.ics.

Settings are read from SLIEKER_* environment variables or a .env file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}

	return cmd
}

// run is the main command logic
func run(cmd *cobra.Command, args []string, o *options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	dest := calendar.DefaultOutput
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		dest = args[0]
	}

	closeLog := setupLogging(cmd.ErrOrStderr(), cfg)
	defer closeLog()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	renderer := o.renderer
	if renderer == nil {
		renderer, err = newRenderer(ctx, cfg)
		if err != nil {
			return fmt.Errorf("initializing renderer: %w", err)
		}
		defer renderer.Close() // nolint:errcheck
	}

	metrics := logger.NewMetrics()
	sc := scraper.New(renderer,
		scraper.WithURL(cfg.SourceURL),
		scraper.WithLocation(loc),
		scraper.WithClock(o.now),
		scraper.WithWorkers(cfg.Workers),
		scraper.WithPageTimeout(cfg.PageTimeout),
		scraper.WithDetailTimeout(cfg.DetailTimeout),
		scraper.WithMetrics(metrics),
	)
	cal := calendar.New(cfg.CalendarName, loc)

	started := time.Now()
	logger.Info("Scraping program", logger.Fields{
		"url":      cfg.SourceURL,
		"renderer": cfg.Renderer,
		"output":   dest,
	})

	count, err := sc.Scrape(ctx, cal.Add)
	if err != nil {
		logger.Error("Scrape failed", logger.Fields{"url": cfg.SourceURL}, err)
		return fmt.Errorf("scraping program: %w", err)
	}

	if err := cal.WriteFile(o.fs, dest); err != nil {
		logger.Error("Failed to write calendar", logger.Fields{"path": dest}, err)
		return err
	}

	snap := metrics.GetSnapshot()
	logger.Info("Wrote calendar", logger.Fields{
		"path":     dest,
		"events":   count,
		"duration": time.Since(started).String(),
		"counters": snap.Counters,
		"timings":  snap.Timings,
	})

	result := &RunResult{
		GeneratedAt: time.Now().UTC(),
		Source:      cfg.SourceURL,
		Output:      dest,
		EventCount:  cal.Len(),
		Events:      cal.Events(),
	}
	return WriteOutput(cmd.OutOrStdout(), result, OutputFormat(cfg.Format))
}

func loadConfig(o *options) (config.Config, error) {
	if o.config != nil {
		if err := o.config.Validate(); err != nil {
			return config.Config{}, err
		}
		return *o.config, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogging installs the default logger and returns a cleanup func
func setupLogging(stderr io.Writer, cfg config.Config) func() {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogFile == "" {
		logger.SetDefault(logger.New(level, stderr))
		return func() {}
	}

	file := logger.NewFileWriter(cfg.LogFile)
	logger.SetDefault(logger.New(level, io.MultiWriter(stderr, file)))
	return func() {
		file.Close() // nolint:errcheck
	}
}

func newRenderer(ctx context.Context, cfg config.Config) (render.Renderer, error) {
	switch cfg.Renderer {
	case config.RendererChrome:
		return render.NewChrome(ctx, cfg.UserAgent)
	default:
		return render.NewHTTP(&http.Client{Timeout: cfg.PageTimeout}, cfg.UserAgent), nil
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
