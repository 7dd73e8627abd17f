// Package purge deletes users across the identity store and the document
// store. Every mode isolates per-record failures: a record that cannot be
// deleted becomes a report entry and the run moves on to the next one.
package purge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/logging"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

// Engine runs purges. It holds no state between runs and performs no I/O
// besides store calls.
type Engine struct {
	identities identity.Store
	docs       documents.Store
	reconciler reconciler.Reconciler
	collection string
	cascade    []string
	observer   Observer
	timeout    time.Duration
}

// New creates an Engine over the given stores.
func New(identities identity.Store, docs documents.Store, opts ...Option) (*Engine, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	r, err := reconciler.New(identities, docs, reconciler.WithCollection(options.collection))
	if err != nil {
		return nil, err
	}
	return &Engine{
		identities: identities,
		docs:       docs,
		reconciler: r,
		collection: options.collection,
		cascade:    options.cascade,
		observer:   options.observer,
		timeout:    options.timeout,
	}, nil
}

// Cascade returns the collections deleted alongside each primary document.
func (e *Engine) Cascade() []string {
	return append([]string(nil), e.cascade...)
}

// DeleteUser deletes the account registered under email, then its primary
// document and cascade documents. An unknown email yields a single NotFound
// failure and no store is modified. A failure after the account is gone is
// reported as is; nothing is rolled back.
func (e *Engine) DeleteUser(ctx context.Context, email string) *Outcome {
	ctx = logging.WithOperation(ctx, string(ModeTargeted))
	logger := logging.FromContext(ctx)
	out := newOutcome(ModeTargeted)
	defer out.finish()

	email = strings.TrimSpace(email)
	if email == "" {
		e.fail(logger, out, Entry{Store: constants.IdentityStore},
			errors.NewValidationError("email", email, "cannot be empty"))
		return out
	}

	callCtx, cancel := e.callContext(ctx)
	rec, err := e.identities.FindByEmail(callCtx, email)
	cancel()
	if err != nil {
		e.fail(logger, out, Entry{Store: constants.IdentityStore, Email: email}, err)
		return out
	}

	entry := Entry{Store: constants.IdentityStore, ID: rec.ID, Email: rec.Email}
	if err := e.deleteIdentity(ctx, rec.ID); err != nil {
		e.fail(logger, out, entry, err)
		return out
	}
	e.succeed(logger, out, entry)

	docEntry, err := e.deleteDocument(ctx, rec.ID, rec.Email)
	if err != nil {
		e.fail(logger, out, docEntry, err)
		return out
	}
	e.succeed(logger, out, docEntry)
	return out
}

// PurgeOrphans reconciles the stores and deletes every orphaned primary
// document with its cascade. The identity store is never modified. The
// error is non-nil only when reconciliation fails, in which case nothing
// is deleted.
func (e *Engine) PurgeOrphans(ctx context.Context) (*Outcome, error) {
	ctx = logging.WithOperation(ctx, string(ModeOrphans))
	logger := logging.FromContext(ctx)
	out := newOutcome(ModeOrphans)
	defer out.finish()

	result, err := e.reconciler.Reconcile(ctx)
	if err != nil {
		return out, err
	}
	logger.Info().Int("orphan_count", len(result.Orphans)).Msg("Purging orphaned documents")

	for _, orphan := range result.Orphans {
		if err := ctx.Err(); err != nil {
			out.PassErrors = append(out.PassErrors, canceled(err))
			break
		}
		entry, err := e.deleteDocument(ctx, orphan.ID, orphan.Email)
		if err != nil {
			e.fail(logger, out, entry, err)
			continue
		}
		e.succeed(logger, out, entry)
	}
	return out, nil
}

// PurgeAll deletes every identity record, then every primary document with
// its cascade. The passes are independent: a pass whose listing fails still
// deletes what it listed and the next pass runs regardless. The returned
// error joins the pass errors.
func (e *Engine) PurgeAll(ctx context.Context) (*Outcome, error) {
	ctx = logging.WithOperation(ctx, string(ModeAll))
	logger := logging.FromContext(ctx)
	out := newOutcome(ModeAll)
	defer out.finish()

	e.identityPass(ctx, logger, out)
	e.documentPass(ctx, logger, out)

	return out, errors.Join(out.PassErrors...)
}

func (e *Engine) identityPass(ctx context.Context, logger *zerolog.Logger, out *Outcome) {
	var (
		records []identity.Record
		listErr error
	)
	for rec, err := range e.identities.List(ctx) {
		if err != nil {
			listErr = err
			break
		}
		records = append(records, rec)
	}
	if listErr != nil {
		logger.Error().Err(listErr).Int("listed", len(records)).Msg("Identity listing failed")
		out.PassErrors = append(out.PassErrors, fmt.Errorf("identity pass: %w", listErr))
	}
	logger.Info().Int("count", len(records)).Msg("Deleting identity records")

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			out.PassErrors = append(out.PassErrors, fmt.Errorf("identity pass: %w", canceled(err)))
			return
		}
		entry := Entry{Store: constants.IdentityStore, ID: rec.ID, Email: rec.Email}
		if err := e.deleteIdentity(ctx, rec.ID); err != nil {
			e.fail(logger, out, entry, err)
			continue
		}
		e.succeed(logger, out, entry)
	}
}

func (e *Engine) documentPass(ctx context.Context, logger *zerolog.Logger, out *Outcome) {
	var (
		docs    []documents.Record
		listErr error
	)
	for doc, err := range e.docs.List(ctx, e.collection) {
		if err != nil {
			listErr = err
			break
		}
		docs = append(docs, doc)
	}
	if listErr != nil {
		logger.Error().Err(listErr).Int("listed", len(docs)).Msg("Document listing failed")
		out.PassErrors = append(out.PassErrors, fmt.Errorf("document pass: %w", listErr))
	}
	logger.Info().Int("count", len(docs)).Str("collection", e.collection).Msg("Deleting documents")

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			out.PassErrors = append(out.PassErrors, fmt.Errorf("document pass: %w", canceled(err)))
			return
		}
		entry, err := e.deleteDocument(ctx, doc.ID, doc.Email)
		if err != nil {
			e.fail(logger, out, entry, err)
			continue
		}
		e.succeed(logger, out, entry)
	}
}

func (e *Engine) deleteIdentity(ctx context.Context, id string) error {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()
	return e.identities.Delete(callCtx, id)
}

// deleteDocument deletes the primary document, then each cascade document.
// Cascade failures are attached to the entry.
func (e *Engine) deleteDocument(ctx context.Context, id, email string) (Entry, error) {
	entry := Entry{
		Store:      constants.DocumentStore,
		ID:         id,
		Email:      email,
		Collection: e.collection,
	}

	callCtx, cancel := e.callContext(ctx)
	err := e.docs.Delete(callCtx, e.collection, id)
	cancel()
	if err != nil {
		return entry, err
	}

	for _, collection := range e.cascade {
		callCtx, cancel := e.callContext(ctx)
		err := e.docs.Delete(callCtx, collection, id)
		cancel()
		if err != nil {
			logging.FromContext(ctx).Warn().
				Err(err).
				Str("collection", collection).
				Str("id", id).
				Msg("Cascade delete failed")
		}
		entry.Cascade = append(entry.Cascade, CascadeResult{Collection: collection, Err: err})
	}
	return entry, nil
}

func (e *Engine) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *Engine) succeed(logger *zerolog.Logger, out *Outcome, entry Entry) {
	out.Succeeded = append(out.Succeeded, entry)
	logger.Debug().
		Str("store", entry.Store).
		Str("id", entry.ID).
		Str("email", entry.Email).
		Msg("Deleted")
	e.observer.Deleted(entry)
}

func (e *Engine) fail(logger *zerolog.Logger, out *Outcome, entry Entry, err error) {
	f := Failure{Entry: entry, Err: err}
	out.Failed = append(out.Failed, f)
	logger.Warn().
		Err(err).
		Str("store", entry.Store).
		Str("id", entry.ID).
		Str("email", entry.Email).
		Msg("Delete failed")
	e.observer.Failed(f)
}

func canceled(cause error) error {
	return fmt.Errorf("%w: %w", errors.ErrCanceled, cause)
}
