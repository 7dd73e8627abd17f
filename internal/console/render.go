package console

import (
	"context"
	"fmt"

	"github.com/agentstation/usersweep/internal/cmd/alerts"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/logging"
	"github.com/agentstation/usersweep/pkg/purge"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

func (c *Controller) renderResult(r *reconciler.Result) {
	fmt.Fprintln(c.out)
	if err := output.NewFormatter(output.FormatTable).Format(c.out, output.ReconcileTables(r)); err != nil {
		c.alert(alerts.NewError("Rendering failed").WithError(err))
		return
	}

	fmt.Fprintf(c.out, "\nIdentity store: %d user(s)\n", r.IdentityCount)
	fmt.Fprintf(c.out, "Document store: %d document(s), %d consistent\n", r.DocumentCount, r.ConsistentCount)
	if r.HasOrphans() {
		c.alert(alerts.NewWarning(fmt.Sprintf("%d orphaned user(s) found", len(r.Orphans))))
	}
	if n := len(r.Unlinked); n > 0 {
		c.alert(alerts.NewInfo(fmt.Sprintf("%d user(s) have no profile document", n)))
	}
}

func (c *Controller) renderDeleted(e purge.Entry) {
	a := alerts.NewSuccess("Deleted " + describe(e))
	if detail := output.CascadeDetail(e); detail != "" {
		a.WithDetails(detail)
	}
	c.alert(a)
}

func (c *Controller) renderFailed(f purge.Failure) {
	c.alert(alerts.NewError("Failed to delete " + describe(f.Entry)).WithError(f.Err))
}

// renderSummary prints the final counts and repeats every failure cause.
func (c *Controller) renderSummary(out *purge.Outcome) {
	fmt.Fprintln(c.out)
	var a *alerts.Alert
	switch {
	case out.OK():
		a = alerts.NewSuccess("Done: " + out.Summary())
	case len(out.Succeeded) == 0 && len(out.PassErrors) == 0:
		a = alerts.NewError("Done: " + out.Summary())
	default:
		a = alerts.NewWarning("Done: " + out.Summary())
	}
	for _, f := range out.Failed {
		a.WithDetails(fmt.Sprintf("%s: %s", describe(f.Entry), f.Message()))
	}
	for _, err := range out.PassErrors {
		a.WithDetails(err.Error())
	}
	c.alert(a)
}

// renderDrift warns when the purge deleted a different set of orphans than
// the one the operator confirmed.
func (c *Controller) renderDrift(ctx context.Context, shown []string, out *purge.Outcome) {
	unlisted, skipped := out.Drift(shown)
	if len(unlisted) == 0 && len(skipped) == 0 {
		return
	}
	logging.FromContext(ctx).Warn().
		Strs("unlisted", unlisted).
		Strs("skipped", skipped).
		Msg("Orphans changed between confirmation and purge")

	a := alerts.NewWarning("Orphans changed between confirmation and purge")
	for _, id := range unlisted {
		a.WithDetails("purged without being listed: " + id)
	}
	for _, id := range skipped {
		a.WithDetails("listed but no longer orphaned: " + id)
	}
	c.alert(a)
}

func describe(e purge.Entry) string {
	target := e.Store
	if e.Collection != "" {
		target = e.Collection
	}
	switch {
	case e.ID == "":
		return fmt.Sprintf("%s user %s", target, orUnknown(e.Email))
	case e.Email == "":
		return fmt.Sprintf("%s/%s", target, e.ID)
	default:
		return fmt.Sprintf("%s/%s (%s)", target, e.ID, e.Email)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "<no email>"
	}
	return s
}
