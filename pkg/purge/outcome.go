package purge

import (
	"fmt"
	"slices"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/usersweep/pkg/constants"
)

// Mode names a deletion mode.
type Mode string

const (
	// ModeTargeted deletes one user found by email from both stores.
	ModeTargeted Mode = "targeted"
	// ModeOrphans deletes orphaned profile documents only.
	ModeOrphans Mode = "orphans"
	// ModeAll deletes every identity and every profile document.
	ModeAll Mode = "all"
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	return string(m)
}

// CascadeResult records the delete of one auxiliary document.
type CascadeResult struct {
	Collection string `json:"collection" yaml:"collection"`
	Err        error  `json:"-" yaml:"-"`
}

// Failed reports whether the cascade delete failed.
func (c CascadeResult) Failed() bool {
	return c.Err != nil
}

// Entry identifies one deleted record. Collection is empty for identity
// store entries.
type Entry struct {
	Store      string          `json:"store" yaml:"store"`
	ID         string          `json:"id" yaml:"id"`
	Email      string          `json:"email,omitempty" yaml:"email,omitempty"`
	Collection string          `json:"collection,omitempty" yaml:"collection,omitempty"`
	Cascade    []CascadeResult `json:"cascade,omitempty" yaml:"cascade,omitempty"`
}

// CascadeFailures returns the cascade deletes that failed.
func (e Entry) CascadeFailures() []CascadeResult {
	var failed []CascadeResult
	for _, c := range e.Cascade {
		if c.Failed() {
			failed = append(failed, c)
		}
	}
	return failed
}

// Failure is a record that could not be deleted.
type Failure struct {
	Entry
	Err error `json:"-" yaml:"-"`
}

// Message returns the cause as shown to the operator.
func (f Failure) Message() string {
	if f.Err == nil {
		return "unknown error"
	}
	return f.Err.Error()
}

// Outcome is the report of one purge run. Succeeded and Failed keep the
// order records were attempted in.
type Outcome struct {
	Mode       Mode      `json:"mode" yaml:"mode"`
	Succeeded  []Entry   `json:"succeeded" yaml:"succeeded"`
	Failed     []Failure `json:"failed" yaml:"failed"`
	PassErrors []error   `json:"-" yaml:"-"`
	StartedAt  utc.Time  `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time  `json:"finished_at" yaml:"finished_at"`
}

func newOutcome(mode Mode) *Outcome {
	return &Outcome{
		Mode:      mode,
		Succeeded: []Entry{},
		Failed:    []Failure{},
		StartedAt: utc.Now(),
	}
}

func (o *Outcome) finish() *Outcome {
	o.FinishedAt = utc.Now()
	return o
}

// OK reports whether every record was deleted and every pass completed.
func (o *Outcome) OK() bool {
	return len(o.Failed) == 0 && len(o.PassErrors) == 0
}

// Total returns the number of records attempted.
func (o *Outcome) Total() int {
	return len(o.Succeeded) + len(o.Failed)
}

// SucceededIn returns the ids deleted from the given store, in order.
func (o *Outcome) SucceededIn(store string) []string {
	var ids []string
	for _, e := range o.Succeeded {
		if e.Store == store {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Attempted returns the ids tried in the given store, succeeded ones first.
func (o *Outcome) Attempted(store string) []string {
	ids := o.SucceededIn(store)
	for _, f := range o.Failed {
		if f.Store == store {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

// Drift compares the documents an orphan purge attempted with the orphan ids
// shown to the operator beforehand. unlisted were attempted without being
// shown; skipped were shown but were no longer orphaned when the purge ran.
// Both are empty when the two reconciliations agree. An aborted run reports
// no skipped ids since it stopped before reaching them.
func (o *Outcome) Drift(shown []string) (unlisted, skipped []string) {
	attempted := o.Attempted(constants.DocumentStore)
	for _, id := range attempted {
		if !slices.Contains(shown, id) {
			unlisted = append(unlisted, id)
		}
	}
	if len(o.PassErrors) > 0 {
		return unlisted, nil
	}
	for _, id := range shown {
		if !slices.Contains(attempted, id) {
			skipped = append(skipped, id)
		}
	}
	return unlisted, skipped
}

// CascadeFailures counts failed cascade deletes across succeeded entries.
func (o *Outcome) CascadeFailures() int {
	n := 0
	for _, e := range o.Succeeded {
		n += len(e.CascadeFailures())
	}
	return n
}

// Duration returns how long the run took.
func (o *Outcome) Duration() time.Duration {
	if o.StartedAt.IsZero() || o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Time.Sub(o.StartedAt.Time)
}

// Summary returns a one-line count of successes and failures.
func (o *Outcome) Summary() string {
	s := fmt.Sprintf("%d succeeded, %d failed", len(o.Succeeded), len(o.Failed))
	if n := len(o.PassErrors); n > 0 {
		s += fmt.Sprintf(", %d pass(es) aborted", n)
	}
	return s
}
