// Package identity provides access to the identity store, the authoritative
// registry of user accounts. The store is read and deleted from, never written.
package identity

import (
	"context"
	"iter"

	"github.com/agentstation/utc"
)

// Record is one account held by the identity store.
type Record struct {
	ID            string   `json:"id" yaml:"id"`
	Email         string   `json:"email" yaml:"email"`
	EmailVerified bool     `json:"email_verified" yaml:"email_verified"`
	Disabled      bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	CreatedAt     utc.Time `json:"created_at" yaml:"created_at"`
}

// Store is the identity store contract.
type Store interface {
	// List returns every account as a forward-only sequence. Each range over
	// the sequence starts from the first page; page tokens are never exposed.
	// A listing failure is yielded once as a StoreUnavailableError and ends the sequence.
	List(ctx context.Context) iter.Seq2[Record, error]

	// FindByEmail returns the account with the given email, or a NotFoundError.
	FindByEmail(ctx context.Context, email string) (Record, error)

	// Delete removes the account. Deleting an absent account is an error.
	Delete(ctx context.Context, id string) error

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Collect drains a listing into a slice, preserving store order.
func Collect(ctx context.Context, store Store) ([]Record, error) {
	var records []Record
	for rec, err := range store.List(ctx) {
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
