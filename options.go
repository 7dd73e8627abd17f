package usersweep

import (
	"time"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// config holds client settings
type config struct {
	collection string
	cascade    []string
	timeout    time.Duration
}

func defaultConfig() *config {
	return &config{
		collection: constants.PrimaryCollection,
		cascade:    constants.DefaultCascadeCollections(),
		timeout:    constants.DefaultOperationTimeout,
	}
}

func newConfig(opts ...Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Option is a function that configures a Client
type Option func(*config) error

// WithCollection configures the collection holding one profile document per user
func WithCollection(name string) Option {
	return func(c *config) error {
		if name == "" {
			return errors.New("collection cannot be empty")
		}
		c.collection = name
		return nil
	}
}

// WithCascade configures the collections deleted alongside each profile document.
// Passing no collections disables the cascade.
func WithCascade(collections ...string) Option {
	return func(c *config) error {
		c.cascade = append([]string(nil), collections...)
		return nil
	}
}

// WithTimeout configures the bound on each store call. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		c.timeout = d
		return nil
	}
}
