package deleteuser

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/cmd/application"
	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
)

type fixture struct {
	ids    *identity.Memory
	docs   *documents.Memory
	format string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFixture(format string) *fixture {
	return &fixture{
		ids: identity.NewMemory(identity.Record{ID: "A", Email: "ana@example.com"}),
		docs: documents.NewMemory().
			Put("usuarios", "A", map[string]any{"email": "ana@example.com"}).
			Put("codigos_verificacao", "A", map[string]any{"codigo": "9876"}),
		format: format,
	}
}

func (f *fixture) execute(input string, args ...string) error {
	app := &application.Mock{
		ClientFunc: func(context.Context) (usersweep.Client, error) {
			return usersweep.New(f.ids, f.docs)
		},
		OutputFormatFunc: func() string { return f.format },
	}
	cmd := NewCommand(app)
	// The root command silences usage and errors; mirror it so output stays parseable.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&f.stdout)
	cmd.SetErr(&f.stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestDeleteConfirmed(t *testing.T) {
	f := newFixture("table")
	require.NoError(t, f.execute("yes\n", "ana@example.com"))

	assert.Equal(t, 0, f.ids.Len())
	assert.False(t, f.docs.Has("usuarios", "A"))
	assert.False(t, f.docs.Has("codigos_verificacao", "A"))
	assert.Contains(t, f.stderr.String(), "Delete user ana@example.com from both stores?")
	assert.Contains(t, f.stdout.String(), "Done: 2 succeeded, 0 failed")
}

func TestDeleteDeclined(t *testing.T) {
	f := newFixture("table")
	require.NoError(t, f.execute("nope\n", "ana@example.com"))

	assert.Equal(t, 1, f.ids.Len())
	assert.Empty(t, f.ids.Deletes())
	assert.Empty(t, f.docs.Deletes())
}

func TestDeleteUnknownEmail(t *testing.T) {
	f := newFixture("json")
	err := f.execute("", "nobody@example.com", "--yes")
	require.ErrorIs(t, err, errors.ErrDeleteFailed)
	assert.NotContains(t, f.stdout.String(), "Usage:")

	var view struct {
		Mode   string `json:"mode"`
		Failed []struct {
			Email string `json:"email"`
			Error string `json:"error"`
		} `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(f.stdout.Bytes(), &view))
	assert.Equal(t, "targeted", view.Mode)
	require.Len(t, view.Failed, 1)
	assert.Equal(t, "nobody@example.com", view.Failed[0].Email)
	assert.Contains(t, view.Failed[0].Error, "not found")

	assert.Empty(t, f.ids.Deletes())
	assert.Empty(t, f.docs.Deletes())
}

func TestDeleteIdentityFailureKeepsDocument(t *testing.T) {
	f := newFixture("table")
	f.ids.FailDelete("A", errors.New("permission denied"))

	err := f.execute("", "ana@example.com", "-y")
	require.Error(t, err)
	assert.True(t, f.docs.Has("usuarios", "A"))
	assert.Empty(t, f.docs.Deletes())
}

func TestDeleteRequiresEmail(t *testing.T) {
	f := newFixture("table")
	require.Error(t, f.execute(""))
}
