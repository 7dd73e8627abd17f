package purge_test

import (
	"context"
	"iter"

	"github.com/stretchr/testify/mock"

	"github.com/agentstation/usersweep/pkg/identity"
)

type MockIdentityStore struct {
	mock.Mock
}

var _ identity.Store = (*MockIdentityStore)(nil)

func (m *MockIdentityStore) List(ctx context.Context) iter.Seq2[identity.Record, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[identity.Record, error])
}

func (m *MockIdentityStore) FindByEmail(ctx context.Context, email string) (identity.Record, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(identity.Record), args.Error(1)
}

func (m *MockIdentityStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIdentityStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func seqOf(records ...identity.Record) iter.Seq2[identity.Record, error] {
	return func(yield func(identity.Record, error) bool) {
		for _, rec := range records {
			if !yield(rec, nil) {
				return
			}
		}
	}
}
