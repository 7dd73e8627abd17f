// Package application provides the application interface for usersweep commands.
//
// The Application interface is the contract between the app layer and the
// command implementations. Commands accept it instead of the concrete App so
// they can be tested against in-memory stores:
//
//	mock := &application.Mock{
//	    ClientFunc: func(context.Context) (usersweep.Client, error) {
//	        return usersweep.New(identity.NewMemory(), documents.NewMemory())
//	    },
//	}
//	cmd := list.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/usersweep"
)

// Application provides what commands need from the app.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the usersweep client, connecting to both stores on first
	// use. Connection failures are startup failures.
	Client(ctx context.Context) (usersweep.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// ConfirmWord returns the answer that unlocks destructive actions.
	ConfirmWord() string

	// Color reports whether terminal output may use ANSI colors.
	Color() bool

	// CredentialsFile returns the explicitly configured credentials path, if any.
	CredentialsFile() string

	// ProjectID returns the explicitly configured project id, if any.
	ProjectID() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
