package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/usersweep/pkg/purge"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

const timeLayout = "2006-01-02 15:04:05"

// IdentityTable lists every identity record of a reconciliation.
func IdentityTable(r *reconciler.Result) Data {
	d := Data{
		Title:           "Identity store",
		Headers:         []string{"#", "Email", "ID", "Verified", "Created"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignCenter, AlignLeft},
	}
	for i, rec := range r.Identities {
		created := "-"
		if !rec.CreatedAt.IsZero() {
			created = rec.CreatedAt.Format(timeLayout)
		}
		d.Rows = append(d.Rows, []string{
			strconv.Itoa(i + 1),
			orDash(rec.Email),
			rec.ID,
			yesNo(rec.EmailVerified),
			created,
		})
	}
	return d
}

// DocumentTable lists every primary document with its status.
func DocumentTable(r *reconciler.Result) Data {
	d := Data{
		Title:           "Document store (" + r.Collection + ")",
		Headers:         []string{"#", "Status", "Email", "ID", "Name", "Verified"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignCenter},
	}
	for i, doc := range r.Documents {
		d.Rows = append(d.Rows, []string{
			strconv.Itoa(i + 1),
			string(doc.Status),
			orDash(doc.Email),
			doc.ID,
			orDash(doc.Name),
			yesNo(doc.EmailVerified),
		})
	}
	return d
}

// ReconcileTables returns the identity and document tables.
func ReconcileTables(r *reconciler.Result) []Data {
	return []Data{IdentityTable(r), DocumentTable(r)}
}

// OutcomeTable lists every attempted record of a purge in order: successes
// first, then failures with their cause.
func OutcomeTable(o *purge.Outcome) Data {
	d := Data{
		Headers: []string{"Store", "ID", "Email", "Result", "Detail"},
	}
	for _, e := range o.Succeeded {
		d.Rows = append(d.Rows, []string{e.Store, orDash(e.ID), orDash(e.Email), "deleted", CascadeDetail(e)})
	}
	for _, f := range o.Failed {
		d.Rows = append(d.Rows, []string{f.Store, orDash(f.ID), orDash(f.Email), "failed", f.Message()})
	}
	return d
}

// CascadeDetail describes failed cascade deletes of an entry, or "" when
// every cascade delete succeeded.
func CascadeDetail(e purge.Entry) string {
	failed := e.CascadeFailures()
	if len(failed) == 0 {
		return ""
	}
	parts := make([]string, len(failed))
	for i, c := range failed {
		parts[i] = c.Collection + ": " + c.Err.Error()
	}
	return "cascade failed: " + strings.Join(parts, "; ")
}

// FailureView is a failed record with its cause as text.
type FailureView struct {
	purge.Entry `yaml:",inline"`
	Error       string `json:"error" yaml:"error"`
}

// OutcomeView is the structured form of a purge outcome.
type OutcomeView struct {
	Mode       string        `json:"mode" yaml:"mode"`
	Summary    string        `json:"summary" yaml:"summary"`
	Succeeded  []purge.Entry `json:"succeeded" yaml:"succeeded"`
	Failed     []FailureView `json:"failed" yaml:"failed"`
	PassErrors []string      `json:"pass_errors,omitempty" yaml:"pass_errors,omitempty"`
	DurationMS int64         `json:"duration_ms" yaml:"duration_ms"`
}

// NewOutcomeView converts an outcome for JSON or YAML output.
func NewOutcomeView(o *purge.Outcome) OutcomeView {
	v := OutcomeView{
		Mode:       o.Mode.String(),
		Summary:    o.Summary(),
		Succeeded:  o.Succeeded,
		Failed:     make([]FailureView, len(o.Failed)),
		DurationMS: o.Duration().Milliseconds(),
	}
	for i, f := range o.Failed {
		v.Failed[i] = FailureView{Entry: f.Entry, Error: f.Message()}
	}
	for _, err := range o.PassErrors {
		v.PassErrors = append(v.PassErrors, err.Error())
	}
	return v
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
