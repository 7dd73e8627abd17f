// Package usersweep reconciles user accounts in an identity store against
// profile documents in a document store and purges what should not be there.
//
// A Client wraps both stores with a read-only reconciler and a purge engine:
//   - Reconcile reports orphaned documents, whose account no longer exists
//   - PurgeOrphans deletes orphaned documents and never touches accounts
//   - PurgeAll deletes every account and every profile document
//   - DeleteUser deletes one user, found by email, from both stores
//
// Purges never stop on a failing record. Each record ends up in the
// Succeeded or Failed list of the returned outcome.
//
// Example usage:
//
//	client, err := usersweep.New(identities, docs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.OnFailed(func(f purge.Failure) {
//	    log.Printf("could not delete %s: %s", f.ID, f.Message())
//	})
//
//	result, err := client.Reconcile(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
//	outcome, err := client.PurgeOrphans(ctx)
package usersweep

import (
	"context"

	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/identity"
	"github.com/agentstation/usersweep/pkg/logging"
	"github.com/agentstation/usersweep/pkg/purge"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

// Client reconciles and purges users across both stores.
type Client interface {
	// Reconcile compares the stores without modifying either.
	Reconcile(ctx context.Context) (*reconciler.Result, error)

	// DeleteUser deletes one user by email from both stores.
	DeleteUser(ctx context.Context, email string) *purge.Outcome

	// PurgeOrphans deletes every orphaned profile document.
	PurgeOrphans(ctx context.Context) (*purge.Outcome, error)

	// PurgeAll deletes every account and every profile document.
	PurgeAll(ctx context.Context) (*purge.Outcome, error)

	// Ping verifies the identity store is reachable.
	Ping(ctx context.Context) error

	// Cascade returns the collections deleted alongside each profile document.
	Cascade() []string

	// Close releases both store clients.
	Close() error

	// OnDeleted registers a callback for each deleted record
	OnDeleted(DeletedHook)

	// OnFailed registers a callback for each record that could not be deleted
	OnFailed(FailedHook)

	// OnPurgeCompleted registers a callback for each finished purge
	OnPurgeCompleted(PurgeCompletedHook)
}

// client is the internal implementation of the Client interface
type client struct {
	identities identity.Store
	docs       documents.Store
	reconciler reconciler.Reconciler
	engine     *purge.Engine

	// Event hooks
	hooks *hooks
}

// New creates a Client over the given stores. The client owns the document
// store and closes it on Close.
func New(identities identity.Store, docs documents.Store, opts ...Option) (Client, error) {
	if identities == nil || docs == nil {
		return nil, errors.NewValidationError("stores", nil, "identity and document stores are required")
	}

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, errors.WrapValidation("options", err)
	}

	c := &client{
		identities: identities,
		docs:       docs,
		hooks:      newHooks(),
	}

	c.reconciler, err = reconciler.New(identities, docs, reconciler.WithCollection(cfg.collection))
	if err != nil {
		return nil, err
	}

	c.engine, err = purge.New(identities, docs,
		purge.WithCollection(cfg.collection),
		purge.WithCascade(cfg.cascade...),
		purge.WithTimeout(cfg.timeout),
		purge.WithObserver(c.hooks),
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Reconcile implements Client.
func (c *client) Reconcile(ctx context.Context) (*reconciler.Result, error) {
	return c.reconciler.Reconcile(ctx)
}

// DeleteUser implements Client.
func (c *client) DeleteUser(ctx context.Context, email string) *purge.Outcome {
	out := c.engine.DeleteUser(ctx, email)
	c.hooks.triggerPurgeCompleted(out)
	return out
}

// PurgeOrphans implements Client.
func (c *client) PurgeOrphans(ctx context.Context) (*purge.Outcome, error) {
	out, err := c.engine.PurgeOrphans(ctx)
	if err != nil {
		return out, err
	}
	c.hooks.triggerPurgeCompleted(out)
	return out, nil
}

// PurgeAll implements Client.
func (c *client) PurgeAll(ctx context.Context) (*purge.Outcome, error) {
	out, err := c.engine.PurgeAll(ctx)
	c.hooks.triggerPurgeCompleted(out)
	return out, err
}

// Ping implements Client.
func (c *client) Ping(ctx context.Context) error {
	return c.identities.Ping(ctx)
}

// Cascade implements Client.
func (c *client) Cascade() []string {
	return c.engine.Cascade()
}

// Close implements Client.
func (c *client) Close() error {
	if err := c.docs.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close document store")
		return err
	}
	return nil
}

// OnDeleted implements Client.
func (c *client) OnDeleted(fn DeletedHook) {
	c.hooks.OnDeleted(fn)
}

// OnFailed implements Client.
func (c *client) OnFailed(fn FailedHook) {
	c.hooks.OnFailed(fn)
}

// OnPurgeCompleted implements Client.
func (c *client) OnPurgeCompleted(fn PurgeCompletedHook) {
	c.hooks.OnPurgeCompleted(fn)
}
