package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/config"
	"github.com/five82/bookgrid/internal/logging"
	"github.com/five82/bookgrid/internal/prefs"
	"github.com/five82/bookgrid/internal/ui"
)

// Options configure a bookgrid command.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bookgrid/prefs.toml
	Endpoint   string // overrides the config endpoint when set
	Verbose    bool
}

// env is what every command shares: settings, a logger and the client.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	flush  func()
	client *books.Client
}

func (e *env) close() {
	if e.flush != nil {
		e.flush()
	}
}

func setup(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}

	logger, flush, err := logging.New(logging.Options{Path: cfg.LogFile, Verbose: opts.Verbose})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := books.NewClient(cfg.Endpoint, books.Options{
		Timeout:      cfg.RequestTimeout,
		RetryMax:     cfg.RetryMax,
		RetryWaitMin: cfg.RetryWaitMin,
		RetryWaitMax: cfg.RetryWaitMax,
		Logger:       logger.Named("books"),
	})
	if err != nil {
		flush()
		return nil, fmt.Errorf("init books client: %w", err)
	}

	logger.Debug("bookgrid configured",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Int("retry_max", cfg.RetryMax),
	)
	return &env{cfg: cfg, log: logger, flush: flush, client: client}, nil
}

// Run boots the bookgrid TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		e.log.Warn("load prefs failed, using defaults", zap.Error(err))
	}

	mount := NewMount(e.client, e.log)
	defer mount.Unmount()

	return ui.Run(ui.Options{
		Context:   ctx,
		Source:    mount,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		Logger:    e.log.Named("ui"),
	})
}
