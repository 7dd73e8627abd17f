package reconciler

import (
	"strings"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Options configures a reconciler.
type options struct {
	collection string
}

func defaultOptions() *options {
	return &options{
		collection: constants.PrimaryCollection,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCollection sets the primary profile collection.
func WithCollection(name string) Option {
	return func(o *options) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return &errors.ValidationError{
				Field:   "collection",
				Message: "cannot be empty",
			}
		}
		o.collection = name
		return nil
	}
}
