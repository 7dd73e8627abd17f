package usersweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/purge"
)

func newTestClient(t *testing.T, opts ...Option) (Client, *identity.Memory, *documents.Memory) {
	t.Helper()
	ids := identity.NewMemory(
		identity.Record{ID: "A", Email: "a@example.com"},
		identity.Record{ID: "B", Email: "b@example.com"},
		identity.Record{ID: "C", Email: "c@example.com"},
	)
	docs := documents.NewMemory().
		Put("usuarios", "A", map[string]any{"email": "a@example.com"}).
		Put("usuarios", "C", map[string]any{"email": "c@example.com"}).
		Put("usuarios", "D", map[string]any{"email": "d@example.com"})

	c, err := New(ids, docs, opts...)
	require.NoError(t, err)
	return c, ids, docs
}

func TestClientReconcileThenPurge(t *testing.T) {
	ctx := context.Background()
	c, ids, _ := newTestClient(t)

	result, err := c.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, result.OrphanIDs())
	assert.Equal(t, 2, result.ConsistentCount)

	out, err := c.PurgeOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1 succeeded, 0 failed", out.Summary())
	assert.Empty(t, ids.Deletes())

	result, err = c.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Orphans)
}

func TestClientHooks(t *testing.T) {
	ctx := context.Background()
	c, _, docs := newTestClient(t)
	docs.FailDelete("usuarios", "C", errors.New("denied"))

	var deleted, failed []string
	var completed []purge.Mode
	c.OnDeleted(func(e purge.Entry) { deleted = append(deleted, e.Store+":"+e.ID) })
	c.OnFailed(func(f purge.Failure) { failed = append(failed, f.Store+":"+f.ID) })
	c.OnPurgeCompleted(func(o *purge.Outcome) { completed = append(completed, o.Mode) })

	out, err := c.PurgeAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, len(out.Succeeded))

	assert.Equal(t, []string{
		"identity:A", "identity:B", "identity:C",
		"documents:A", "documents:D",
	}, deleted)
	assert.Equal(t, []string{"documents:C"}, failed)

	c.DeleteUser(ctx, "nobody@example.com")
	assert.Equal(t, []purge.Mode{purge.ModeAll, purge.ModeTargeted}, completed)
}

func TestClientOptions(t *testing.T) {
	ctx := context.Background()
	c, _, docs := newTestClient(t, WithCascade(), WithTimeout(0))
	assert.Empty(t, c.Cascade())

	_, err := c.PurgeOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"usuarios/D"}, docs.Deletes())

	_, err = New(identity.NewMemory(), documents.NewMemory(), WithCollection(""))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(identity.NewMemory(), documents.NewMemory(), WithTimeout(-1))
	assert.True(t, errors.IsValidationError(err))

	_, err = New(nil, documents.NewMemory())
	assert.True(t, errors.IsValidationError(err))
}

func TestClientDefaults(t *testing.T) {
	c, _, _ := newTestClient(t)
	assert.Equal(t, []string{"verification_codes", "codigos_verificacao"}, c.Cascade())
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())
}
