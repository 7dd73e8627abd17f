package console

import (
	"strings"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

type options struct {
	confirmWord string
	color       bool
}

// Option configures a Controller.
type Option func(*options) error

// WithConfirmWord sets the answer that unlocks destructive actions.
func WithConfirmWord(word string) Option {
	return func(o *options) error {
		word = strings.TrimSpace(word)
		if word == "" {
			return errors.NewValidationError("confirm_word", word, "cannot be empty")
		}
		o.confirmWord = word
		return nil
	}
}

// WithColor enables ANSI colors in status lines.
func WithColor(enabled bool) Option {
	return func(o *options) error {
		o.color = enabled
		return nil
	}
}

func newOptions(opts ...Option) (*options, error) {
	o := &options{confirmWord: constants.DefaultConfirmWord}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
