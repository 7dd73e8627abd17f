// Package app provides the application context and dependency management
// for the usersweep CLI. It centralizes configuration, logging and the
// lifecycle of the store connections.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/cmd/application"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/errors"
)

// App represents the usersweep application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Store connections
	connect ConnectFunc

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client usersweep.Client
}

// ConnectFunc opens both stores and returns a client over them.
type ConnectFunc func(ctx context.Context, cfg *Config) (usersweep.Client, error)

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration from files and environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		connect: Connect,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// ConfirmWord returns the answer that unlocks destructive actions.
func (a *App) ConfirmWord() string {
	return a.config.ConfirmWord
}

// Color reports whether stdout is a terminal and colors were not disabled.
func (a *App) Color() bool {
	return !a.config.NoColor && output.IsTerminal()
}

// CredentialsFile returns the explicitly configured credentials path.
func (a *App) CredentialsFile() string {
	return a.config.CredentialsFile
}

// ProjectID returns the explicitly configured project id.
func (a *App) ProjectID() string {
	return a.config.ProjectID
}

// Client returns the usersweep client, connecting lazily on first use.
// This is thread-safe and ensures only one connection is made.
func (a *App) Client(ctx context.Context) (usersweep.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	if err := a.config.Validate(); err != nil {
		return nil, err
	}
	c, err := a.connect(ctx, a.config)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// Shutdown releases the store connections, if any were made.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to close store connections during shutdown")
		return err
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "cannot be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithConnect replaces how stores are opened (useful for testing).
func WithConnect(fn ConnectFunc) Option {
	return func(a *App) error {
		if fn == nil {
			return errors.NewValidationError("connect", nil, "cannot be nil")
		}
		a.connect = fn
		return nil
	}
}

// WithClient sets a ready client (useful for testing).
func WithClient(c usersweep.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
