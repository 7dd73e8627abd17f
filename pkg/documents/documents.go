// Package documents provides access to the document store holding
// application-level user profiles and their per-user auxiliary collections.
package documents

import (
	"context"
	"iter"

	"github.com/agentstation/usersweep/pkg/constants"
)

// Record is one document. For profile documents the id equals the identity
// store account id when the two stores are consistent.
type Record struct {
	ID            string         `json:"id" yaml:"id"`
	Collection    string         `json:"collection" yaml:"collection"`
	Email         string         `json:"email,omitempty" yaml:"email,omitempty"`
	Name          string         `json:"name,omitempty" yaml:"name,omitempty"`
	EmailVerified bool           `json:"email_verified" yaml:"email_verified"`
	Fields        map[string]any `json:"-" yaml:"-"`
}

// Store is the document store contract.
type Store interface {
	// List streams every document of a collection in the store's natural order.
	// A failure is yielded once as a StoreUnavailableError and ends the sequence.
	List(ctx context.Context, collection string) iter.Seq2[Record, error]

	// Get returns one document, or a NotFoundError.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Delete removes one document. Deleting an absent document succeeds.
	Delete(ctx context.Context, collection, id string) error

	// Close releases the underlying client.
	Close() error
}

// Decode builds a Record from raw document fields. Well-known profile fields
// are lifted out; everything stays available in Fields.
func Decode(collection, id string, fields map[string]any) Record {
	rec := Record{
		ID:         id,
		Collection: collection,
		Fields:     fields,
	}
	rec.Email = stringField(fields, constants.FieldEmail)
	rec.Name = stringField(fields, constants.FieldName, constants.FieldNameFallback)
	rec.EmailVerified = boolField(fields, constants.FieldEmailVerified, constants.FieldEmailVerifiedFallback)
	return rec
}

func stringField(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key].(string); ok {
			return v
		}
	}
	return ""
}

func boolField(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		if v, ok := fields[key].(bool); ok {
			return v
		}
	}
	return false
}
