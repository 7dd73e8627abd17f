package purge

import (
	"strings"
	"time"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Options configures an Engine.
type options struct {
	collection string
	cascade    []string
	observer   Observer
	timeout    time.Duration
}

func defaultOptions() *options {
	return &options{
		collection: constants.PrimaryCollection,
		cascade:    constants.DefaultCascadeCollections(),
		observer:   nopObserver{},
		timeout:    constants.DefaultOperationTimeout,
	}
}

// Option is a function that configures an Engine.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCollection sets the primary profile collection.
func WithCollection(name string) Option {
	return func(o *options) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return errors.NewValidationError("collection", name, "cannot be empty")
		}
		o.collection = name
		return nil
	}
}

// WithCascade replaces the collections deleted alongside each primary
// document. Calling it with no names disables the cascade.
func WithCascade(collections ...string) Option {
	return func(o *options) error {
		cascade := make([]string, 0, len(collections))
		for _, c := range collections {
			c = strings.TrimSpace(c)
			if c == "" {
				return errors.NewValidationError("cascade", collections, "collection names cannot be empty")
			}
			cascade = append(cascade, c)
		}
		o.cascade = cascade
		return nil
	}
}

// WithObserver registers an observer for per-record progress.
func WithObserver(observer Observer) Option {
	return func(o *options) error {
		if observer == nil {
			return errors.NewValidationError("observer", nil, "cannot be nil")
		}
		o.observer = observer
		return nil
	}
}

// WithTimeout bounds each store call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.NewValidationError("timeout", d, "cannot be negative")
		}
		o.timeout = d
		return nil
	}
}
