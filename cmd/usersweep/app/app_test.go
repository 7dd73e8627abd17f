package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/logging"
)

func memoryConnect(calls *atomic.Int32) ConnectFunc {
	return func(context.Context, *Config) (usersweep.Client, error) {
		calls.Add(1)
		ids := identity.NewMemory(identity.Record{ID: "A", Email: "a@example.com"})
		docs := documents.NewMemory().
			Put("usuarios", "A", map[string]any{"email": "a@example.com"}).
			Put("usuarios", "D", map[string]any{"email": "d@example.com"})
		return usersweep.New(ids, docs)
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	isolate(t)
	opts = append([]Option{WithLogger(logging.NewNopLogger())}, opts...)
	app, err := New("1.0.0", "abc123", "2025-01-01", "test", opts...)
	require.NoError(t, err)
	return app
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2025-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.Equal(t, "yes", app.ConfirmWord())
}

func TestApp_OptionsRejectNil(t *testing.T) {
	isolate(t)
	_, err := New("dev", "", "", "", WithConfig(nil))
	assert.True(t, errors.IsValidationError(err))

	_, err = New("dev", "", "", "", WithConnect(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestApp_Client_Singleton(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))

	const goroutines = 50
	var wg sync.WaitGroup
	clients := make([]usersweep.Client, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := app.Client(context.Background())
			assert.NoError(t, err)
			clients[idx] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
}

func TestApp_Client_ValidatesBeforeConnecting(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))
	app.Config().DocumentStore = "mongodb"

	_, err := app.Client(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Zero(t, calls.Load())
}

func TestApp_Client_ConnectFailureIsReturned(t *testing.T) {
	unreachable := errors.NewStoreUnavailableError("identity", "ping", errors.New("connection refused"))
	app := newTestApp(t, WithConnect(func(context.Context, *Config) (usersweep.Client, error) {
		return nil, unreachable
	}))

	_, err := app.Client(context.Background())
	assert.ErrorIs(t, err, unreachable)
}

func TestApp_Shutdown(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))

	require.NoError(t, app.Shutdown(context.Background()), "shutdown before connecting")

	_, err := app.Client(context.Background())
	require.NoError(t, err)
	require.NoError(t, app.Shutdown(context.Background()))

	_, err = app.Client(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load(), "shutdown releases the client")
}

func execute(t *testing.T, app *App, input string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := app.createRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(input))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestExecute_List(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))

	out, _, err := execute(t, app, "", "list", "--format", "json", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, `"orphans"`)
	assert.Contains(t, out, `"D"`)
	assert.Equal(t, "error", app.Logger().GetLevel().String())
}

func TestExecute_RootRunsMenu(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))

	out, _, err := execute(t, app, "5\n")
	require.NoError(t, err)
	assert.Contains(t, out, "USER MANAGER")
	assert.Contains(t, out, "Goodbye!")
}

func TestExecute_FlagsOverrideConfig(t *testing.T) {
	var calls atomic.Int32
	app := newTestApp(t, WithConnect(memoryConnect(&calls)))
	app.Config().ProjectID = "from-config"

	_, _, err := execute(t, app, "", "version", "--project", "from-flag", "-q")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", app.ProjectID())
	assert.True(t, app.Config().Quiet)
	assert.Zero(t, calls.Load(), "version does not connect")
}

func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t)
	_, _, err := execute(t, app, "", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecute_MissingConfigFile(t *testing.T) {
	app := newTestApp(t)
	_, _, err := execute(t, app, "", "version", "--config", "/nonexistent/usersweep.yaml")
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestExecute_UnknownCommand(t *testing.T) {
	app := newTestApp(t)
	_, _, err := execute(t, app, "", "frobnicate")
	require.Error(t, err)
}
