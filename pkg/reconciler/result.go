package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/usersweep/pkg/documents"
	"github.com/agentstation/usersweep/pkg/identity"
)

// Status classifies a profile document.
type Status string

const (
	// StatusConsistent marks a document whose id exists in both stores.
	StatusConsistent Status = "consistent"
	// StatusOrphan marks a document whose id is absent from the identity store.
	StatusOrphan Status = "orphan"
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// Entry identifies one user by id and email.
type Entry struct {
	ID    string `json:"id" yaml:"id"`
	Email string `json:"email" yaml:"email"`
}

// Classified is a profile document with its reconciliation status.
type Classified struct {
	documents.Record `yaml:",inline"`
	Status           Status `json:"status" yaml:"status"`
}

// Result represents the outcome of one reconciliation. It is derived data
// and never persisted.
type Result struct {
	Collection string `json:"collection" yaml:"collection"`

	// Orphans lists orphaned documents in document store order.
	Orphans []Entry `json:"orphans" yaml:"orphans"`

	ConsistentCount int `json:"consistent_count" yaml:"consistent_count"`
	IdentityCount   int `json:"identity_count" yaml:"identity_count"`
	DocumentCount   int `json:"document_count" yaml:"document_count"`

	// Identities holds every identity record in listing order.
	Identities []identity.Record `json:"identities" yaml:"identities"`

	// Documents holds every primary document with its status.
	Documents []Classified `json:"documents" yaml:"documents"`

	// Unlinked lists identity records with no primary document.
	Unlinked []Entry `json:"unlinked" yaml:"unlinked"`

	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
}

// HasOrphans reports whether any orphan was found.
func (r *Result) HasOrphans() bool {
	return len(r.Orphans) > 0
}

// OrphanIDs returns the orphan ids in order.
func (r *Result) OrphanIDs() []string {
	ids := make([]string, len(r.Orphans))
	for i, o := range r.Orphans {
		ids[i] = o.ID
	}
	return ids
}

// Duration returns how long the reconciliation took.
func (r *Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Time.Sub(r.StartedAt.Time)
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.HasOrphans() {
		return fmt.Sprintf("%d identities, %d documents, all consistent", r.IdentityCount, r.DocumentCount)
	}
	return fmt.Sprintf("%d identities, %d documents, %d consistent, %d orphaned",
		r.IdentityCount, r.DocumentCount, r.ConsistentCount, len(r.Orphans))
}
