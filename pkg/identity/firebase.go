package identity

import (
	"context"
	"iter"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/agentstation/utc"
	"google.golang.org/api/iterator"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/logging"
)

// AuthClient is the subset of the Firebase Authentication client used here.
type AuthClient interface {
	Users(ctx context.Context, nextPageToken string) *auth.UserIterator
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

var _ AuthClient = (*auth.Client)(nil)

// FirebaseStore is the identity store backed by Firebase Authentication.
type FirebaseStore struct {
	client   AuthClient
	pageSize int
}

var _ Store = (*FirebaseStore)(nil)

// FirebaseOption configures a FirebaseStore.
type FirebaseOption func(*FirebaseStore)

// WithPageSize sets how many accounts are requested per page.
// Values outside 1..MaxPageSize are clamped.
func WithPageSize(n int) FirebaseOption {
	return func(s *FirebaseStore) {
		switch {
		case n <= 0:
			s.pageSize = constants.DefaultPageSize
		case n > constants.MaxPageSize:
			s.pageSize = constants.MaxPageSize
		default:
			s.pageSize = n
		}
	}
}

// NewFirebaseStore wraps a Firebase Authentication client.
func NewFirebaseStore(client AuthClient, opts ...FirebaseOption) *FirebaseStore {
	s := &FirebaseStore{client: client, pageSize: constants.DefaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List implements Store.
func (s *FirebaseStore) List(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		it := s.client.Users(ctx, "")
		it.PageInfo().MaxSize = s.pageSize

		count := 0
		for {
			user, err := it.Next()
			if err == iterator.Done {
				logging.FromContext(ctx).Debug().
					Int("count", count).
					Msg("Finished listing identity store")
				return
			}
			if err != nil {
				yield(Record{}, errors.WrapUnavailable(constants.IdentityStore, "list", err))
				return
			}
			count++
			if !yield(fromUserRecord(user.UserRecord), nil) {
				return
			}
		}
	}
}

// FindByEmail implements Store.
func (s *FirebaseStore) FindByEmail(ctx context.Context, email string) (Record, error) {
	user, err := s.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return Record{}, errors.NewNotFoundError("user", email)
		}
		return Record{}, errors.WrapUnavailable(constants.IdentityStore, "get", err)
	}
	return fromUserRecord(user), nil
}

// Delete implements Store.
func (s *FirebaseStore) Delete(ctx context.Context, id string) error {
	return errors.WrapDelete(constants.IdentityStore, "", id, s.client.DeleteUser(ctx, id))
}

// Ping implements Store by fetching a single account.
func (s *FirebaseStore) Ping(ctx context.Context) error {
	it := s.client.Users(ctx, "")
	it.PageInfo().MaxSize = 1
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return errors.WrapUnavailable(constants.IdentityStore, "ping", err)
	}
	return nil
}

func fromUserRecord(user *auth.UserRecord) Record {
	if user == nil {
		return Record{}
	}
	rec := Record{
		EmailVerified: user.EmailVerified,
		Disabled:      user.Disabled,
	}
	if user.UserInfo != nil {
		rec.ID = user.UID
		rec.Email = user.Email
	}
	if user.UserMetadata != nil && user.UserMetadata.CreationTimestamp > 0 {
		rec.CreatedAt = utc.New(time.UnixMilli(user.UserMetadata.CreationTimestamp))
	}
	return rec
}
