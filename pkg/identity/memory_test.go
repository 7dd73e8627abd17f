package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
)

func users(ids ...string) []identity.Record {
	out := make([]identity.Record, len(ids))
	for i, id := range ids {
		out[i] = identity.Record{ID: id, Email: id + "@example.com"}
	}
	return out
}

func ids(records []identity.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestMemoryListFollowsPages(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemory(users("a", "b", "c", "d", "e")...)
	store.SetPageSize(2)

	got, err := identity.Collect(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(got))

	t.Run("each range restarts from the first page", func(t *testing.T) {
		again, err := identity.Collect(ctx, store)
		require.NoError(t, err)
		assert.Equal(t, ids(got), ids(again))
	})

	t.Run("early break stops the sequence", func(t *testing.T) {
		var seen []string
		for rec, err := range store.List(ctx) {
			require.NoError(t, err)
			seen = append(seen, rec.ID)
			if len(seen) == 3 {
				break
			}
		}
		assert.Equal(t, []string{"a", "b", "c"}, seen)
	})
}

func TestMemoryListSurvivesDeletesWhileRanging(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemory(users("a", "b", "c", "d", "e")...)
	store.SetPageSize(2)

	var visited []string
	for rec, err := range store.List(ctx) {
		require.NoError(t, err)
		visited = append(visited, rec.ID)
		require.NoError(t, store.Delete(ctx, rec.ID))
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, visited)
	assert.Zero(t, store.Len())
}

func TestMemoryListFailure(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemory(users("a", "b", "c")...)
	store.FailList(2, errors.New("backend down"))

	var seen []string
	var listErr error
	for rec, err := range store.List(ctx) {
		if err != nil {
			listErr = err
			break
		}
		seen = append(seen, rec.ID)
	}

	assert.Equal(t, []string{"a", "b"}, seen)
	assert.True(t, pkgerrors.IsStoreUnavailable(listErr))

	records, err := identity.Collect(ctx, store)
	assert.Nil(t, records)
	assert.True(t, pkgerrors.IsStoreUnavailable(err))
}

func TestMemoryFindByEmail(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemory(users("a", "b")...)

	rec, err := store.FindByEmail(ctx, "B@example.com")
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)

	_, err = store.FindByEmail(ctx, "nobody@example.com")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemory(users("a", "b")...)
	store.FailDelete("b", errors.New("quota exceeded"))

	require.NoError(t, store.Delete(ctx, "a"))

	err := store.Delete(ctx, "b")
	assert.True(t, pkgerrors.IsDeleteError(err))

	t.Run("absent id is a delete error", func(t *testing.T) {
		err := store.Delete(ctx, "a")
		assert.True(t, pkgerrors.IsDeleteError(err))
	})

	assert.Equal(t, []string{"a", "b", "a"}, store.Deletes())
	assert.Equal(t, 1, store.Len())
}

func TestCollect(t *testing.T) {
	store := identity.NewMemory(users("x", "y")...)
	records, err := identity.Collect(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "x", records[0].ID)
	assert.Equal(t, "y", records[1].ID)
}
