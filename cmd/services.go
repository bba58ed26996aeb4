package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/xvierd/calm-cli/internal/adapters/notification"
	"github.com/xvierd/calm-cli/internal/adapters/storage"
	"github.com/xvierd/calm-cli/internal/adapters/terminal"
	"github.com/xvierd/calm-cli/internal/config"
	"github.com/xvierd/calm-cli/internal/logging"
	"github.com/xvierd/calm-cli/internal/ports"
	"github.com/xvierd/calm-cli/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	logger   *slog.Logger
	logFile  io.Closer
	storage  ports.Storage
	prompts  *services.PromptService
	notifier *notification.Notifier
	random   ports.Random
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	configErr := err
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
		if e, perr := config.ParseEnv(); perr == nil {
			e.Apply(app.config)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v; using default settings\n", err)
	}
	if app.config.Storage.DataDir == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		app.config.Storage.DataDir = dir
	}

	// Logs go to a file; the terminal belongs to the session.
	app.logger, app.logFile, err = logging.Open(config.GetLogPath(app.config), app.config.Log.Level)
	if err != nil {
		app.logger = logging.Discard()
	}
	if configErr != nil {
		app.logger.Warn("config load failed, using defaults", "error", configErr)
	}

	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	path := dbPath
	if path == "" {
		path = config.GetDBPath(app.config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	app.storage, err = storage.New(path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.prompts = services.NewPromptService(app.storage)
	app.random = terminal.NewRandom(seed)

	app.logger.Debug("services initialized", "db", path, "seed", seed)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	var err error
	if app.storage != nil {
		err = app.storage.Close()
		app.storage = nil
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
	return err
}

// newSessionService builds a session service drawing on screen and
// keyboard with the configured pacing.
func newSessionService(screen ports.Screen, keyboard ports.Keyboard) *services.SessionService {
	svc := services.NewSessionService(services.SessionDeps{
		Screen:   screen,
		Keyboard: keyboard,
		Clock:    terminal.SystemClock{},
		Random:   app.random,
		Prompts:  app.prompts,
		Notifier: app.notifier,
		Logger:   app.logger,
	})
	svc.SetPacing(app.config.ToPacing())
	return svc
}

// openTerminal takes over stdin for a session. The terminal is closed when
// ctx is cancelled so a blocked read returns.
func openTerminal(ctx context.Context, out io.Writer) (*terminal.Terminal, func(), error) {
	t, err := terminal.Open(os.Stdin, out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open terminal: %w", err)
	}
	app.logger.Debug("terminal opened", "raw", t.IsRaw())
	stop := context.AfterFunc(ctx, func() { _ = t.Close() })
	return t, func() {
		stop()
		if err := t.Close(); err != nil {
			app.logger.Warn("terminal restore failed", "error", err)
		}
	}, nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
