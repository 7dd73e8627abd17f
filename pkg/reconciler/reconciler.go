// Package reconciler cross-references the identity store with the document
// store. It finds orphans: profile documents whose account no longer exists.
// Reconciliation is read-only and keeps no state between calls.
package reconciler

import (
	"context"

	"github.com/agentstation/utc"

	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/logging"
)

// Reconciler computes the difference between the two stores.
type Reconciler interface {
	// Reconcile lists every identity id, then streams the primary collection
	// and partitions its documents into consistent and orphaned. A listing
	// failure in either store returns the error and no partial result.
	Reconcile(ctx context.Context) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	identities identity.Store
	docs       documents.Store
	collection string
}

// New creates a Reconciler over the given stores.
func New(identities identity.Store, docs documents.Store, opts ...Option) (Reconciler, error) {
	if identities == nil {
		return nil, errors.NewValidationError("identities", nil, "cannot be nil")
	}
	if docs == nil {
		return nil, errors.NewValidationError("documents", nil, "cannot be nil")
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		identities: identities,
		docs:       docs,
		collection: options.collection,
	}, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context) (*Result, error) {
	logger := logging.FromContext(ctx).With().
		Str("collection", r.collection).
		Logger()

	result := &Result{
		Collection: r.collection,
		StartedAt:  utc.Now(),
	}

	// Step 1: materialize the identity id set
	identities, err := identity.Collect(ctx, r.identities)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(identities))
	for _, rec := range identities {
		known[rec.ID] = struct{}{}
	}
	result.Identities = identities
	result.IdentityCount = len(identities)
	logger.Debug().Int("identity_count", result.IdentityCount).Msg("Collected identity ids")

	// Step 2: stream documents and partition them in store order
	present := make(map[string]struct{})
	for doc, err := range r.docs.List(ctx, r.collection) {
		if err != nil {
			return nil, err
		}
		present[doc.ID] = struct{}{}

		status := StatusConsistent
		if _, ok := known[doc.ID]; ok {
			result.ConsistentCount++
		} else {
			status = StatusOrphan
			result.Orphans = append(result.Orphans, Entry{ID: doc.ID, Email: doc.Email})
		}
		result.Documents = append(result.Documents, Classified{Record: doc, Status: status})
	}
	result.DocumentCount = len(result.Documents)

	// Step 3: accounts without a profile document are reported, never purged
	for _, rec := range result.Identities {
		if _, ok := present[rec.ID]; !ok {
			result.Unlinked = append(result.Unlinked, Entry{ID: rec.ID, Email: rec.Email})
		}
	}

	result.FinishedAt = utc.Now()
	logger.Info().
		Int("identity_count", result.IdentityCount).
		Int("document_count", result.DocumentCount).
		Int("consistent_count", result.ConsistentCount).
		Int("orphan_count", len(result.Orphans)).
		Int("unlinked_count", len(result.Unlinked)).
		Dur("duration", result.Duration()).
		Msg("Reconciliation completed")

	return result, nil
}
