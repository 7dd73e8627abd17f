package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/pkg/constants"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ClientFunc          func(ctx context.Context) (usersweep.Client, error)
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	ConfirmWordFunc     func() string
	CredentialsFileFunc func() string
	ProjectIDFunc       func() string
	VersionFunc         func() string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client(ctx context.Context) (usersweep.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// ConfirmWord returns the confirm word using the mock function or the default.
func (m *Mock) ConfirmWord() string {
	if m.ConfirmWordFunc != nil {
		return m.ConfirmWordFunc()
	}
	return constants.DefaultConfirmWord
}

// Color always returns false.
func (m *Mock) Color() bool { return false }

// CredentialsFile returns the path using the mock function or "".
func (m *Mock) CredentialsFile() string {
	if m.CredentialsFileFunc != nil {
		return m.CredentialsFileFunc()
	}
	return ""
}

// ProjectID returns the project using the mock function or "".
func (m *Mock) ProjectID() string {
	if m.ProjectIDFunc != nil {
		return m.ProjectIDFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
