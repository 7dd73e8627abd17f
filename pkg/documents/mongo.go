package documents

import (
	"context"
	"fmt"
	"iter"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// MongoStore is the document store backed by MongoDB. Each collection maps
// to a MongoDB collection and the user id is stored in _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Store = (*MongoStore)(nil)

// ConnectMongo opens a client for uri and verifies it with a ping.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		return nil, errors.NewValidationError("mongodb_database", database, "cannot be empty")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.WrapUnavailable(constants.DocumentStore, "connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.WrapUnavailable(constants.DocumentStore, "ping", err)
	}
	return NewMongoStore(client, database), nil
}

// NewMongoStore wraps a connected client. The store owns the client.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

// Database returns the database the store reads from.
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

// List implements Store. Natural order is _id ascending.
func (s *MongoStore) List(ctx context.Context, collection string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
		cursor, err := s.db.Collection(collection).Find(ctx, bson.D{}, opts)
		if err != nil {
			yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", err))
			return
		}
		defer cursor.Close(context.WithoutCancel(ctx))

		for cursor.Next(ctx) {
			var raw bson.M
			if err := cursor.Decode(&raw); err != nil {
				yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", err))
				return
			}
			if !yield(decodeBSON(collection, raw), nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(Record{}, errors.WrapUnavailable(constants.DocumentStore, "list", err))
		}
	}
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (Record, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Record{}, errors.NewNotFoundError("document", collection+"/"+id)
	}
	if err != nil {
		return Record{}, errors.WrapUnavailable(constants.DocumentStore, "get", err)
	}
	return decodeBSON(collection, raw), nil
}

// Delete implements Store. A zero DeletedCount means the document was absent.
func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	return errors.WrapDelete(constants.DocumentStore, collection, id, err)
}

// Close implements Store.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func decodeBSON(collection string, raw bson.M) Record {
	id := ""
	switch v := raw["_id"].(type) {
	case string:
		id = v
	case bson.ObjectID:
		id = v.Hex()
	case nil:
	default:
		id = fmt.Sprint(v)
	}
	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "_id" {
			fields[k] = v
		}
	}
	return Decode(collection, id, fields)
}
