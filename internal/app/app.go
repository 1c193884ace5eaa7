package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/redirectctl/internal/config"
	"github.com/five82/redirectctl/internal/logging"
	"github.com/five82/redirectctl/internal/prefs"
	"github.com/five82/redirectctl/internal/redirect"
	"github.com/five82/redirectctl/internal/state"
	"github.com/five82/redirectctl/internal/ui"
)

// Options configure the redirectctl application.
type Options struct {
	ConfigPath string
	PrefsPath  string    // empty uses default ~/.config/redirectctl/prefs.toml
	PollEvery  int       // seconds; zero uses default
	Stderr     io.Writer // command logs; nil uses os.Stderr
}

func (o Options) stderr() io.Writer {
	if o.Stderr == nil {
		return os.Stderr
	}
	return o.Stderr
}

// Run boots the redirect browser until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger, logFile, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	pageSize := cfg.PageSize
	if userPrefs.PageSize > 0 {
		pageSize = userPrefs.PageSize
	}

	store := &state.Store{}
	feed := NewFeed(client, pageSize)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logger.Info().
		Str("api_url", client.BaseURL()).
		Int("page_size", pageSize).
		Dur("poll", interval).
		Msg("starting browser")

	// Populate the store before the UI draws its first frame.
	_ = refresh(ctx, store, feed, logger)

	// Start background poller
	StartPoller(ctx, store, feed, interval, logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Editor:    client,
		Pager:     feed,
		Store:     store,
		APIURL:    client.BaseURL(),
		PollTick:  time.Second,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		PageSize:  userPrefs.PageSize,
		Logger:    logger,
	}
	return ui.Run(uiOpts)
}

func newClient(cfg config.Config) (*redirect.Client, error) {
	client, err := redirect.NewClient(cfg.APIURL, cfg.Token,
		redirect.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("init redirect client: %w", err)
	}
	return client, nil
}

func pageCount(size int) string {
	if size <= 0 {
		return ""
	}
	return strconv.Itoa(size)
}

// commandLogger is used by Exec; the browser logs to a file instead.
func commandLogger(cfg config.Config, opts Options) zerolog.Logger {
	return logging.NewConsole(opts.stderr(), cfg.LogLevel)
}
