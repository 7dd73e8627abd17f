package cmdutil

import (
	"fmt"
	"io"

	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/errors"
	"github.com/agentstation/usersweep/pkg/purge"
)

// RenderOutcome writes a purge outcome in the given format. Tables are
// followed by the summary line.
func RenderOutcome(w io.Writer, format output.Format, o *purge.Outcome) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, output.NewOutcomeView(o))
	}

	if o.Total() > 0 {
		if err := output.NewFormatter(format).Format(w, output.OutcomeTable(o)); err != nil {
			return err
		}
	}
	for _, err := range o.PassErrors {
		fmt.Fprintf(w, "Aborted: %v\n", err)
	}
	fmt.Fprintf(w, "\nDone: %s\n", o.Summary())
	return nil
}

// OutcomeError returns an error when any record could not be deleted or a
// pass was aborted, so scripts see a non-zero exit status.
func OutcomeError(o *purge.Outcome) error {
	if o.OK() {
		return nil
	}
	return fmt.Errorf("%s purge incomplete (%s): %w", o.Mode, o.Summary(), errors.ErrDeleteFailed)
}
