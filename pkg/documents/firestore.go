package documents

import (
	"context"
	"iter"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/logging"
)

// FirestoreStore is the document store backed by Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

var _ Store = (*FirestoreStore)(nil)

// NewFirestoreStore wraps a Firestore client. The store owns the client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// List implements Store.
func (s *FirestoreStore) List(ctx context.Context, collection string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		it := s.client.Collection(collection).Documents(ctx)
		defer it.Stop()

		count := 0
		for {
			snap, err := it.Next()
			if err == iterator.Done {
				logging.FromContext(ctx).Debug().
					Str("collection", collection).
					Int("count", count).
					Msg("Finished streaming collection")
				return
			}
			if err != nil {
				yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", err))
				return
			}
			count++
			if !yield(Decode(collection, snap.Ref.ID, snap.Data()), nil) {
				return
			}
		}
	}
}

// Get implements Store.
func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (Record, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Record{}, errors.NewNotFoundError("document", collection+"/"+id)
		}
		return Record{}, errors.WrapUnavailable(constants.DocumentStore, "get", err)
	}
	return Decode(collection, snap.Ref.ID, snap.Data()), nil
}

// Delete implements Store. Firestore deletes without preconditions succeed
// whether or not the document exists.
func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	return errors.WrapDelete(constants.DocumentStore, collection, id, err)
}

// Close implements Store.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
