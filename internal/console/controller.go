// Package console implements the interactive menu. It owns the terminal
// session: it reads choices and confirmations, dispatches to the client and
// renders reports. The client never prompts.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/cmd/alerts"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/logging"
	"github.com/agentstation/usersweep/pkg/purge"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

// Service is the part of usersweep.Client the controller drives.
type Service interface {
	Reconcile(ctx context.Context) (*reconciler.Result, error)
	DeleteUser(ctx context.Context, email string) *purge.Outcome
	PurgeOrphans(ctx context.Context) (*purge.Outcome, error)
	PurgeAll(ctx context.Context) (*purge.Outcome, error)
	OnDeleted(usersweep.DeletedHook)
	OnFailed(usersweep.FailedHook)
}

var _ Service = (usersweep.Client)(nil)

// Controller runs the menu state machine.
type Controller struct {
	svc         Service
	in          io.Reader
	lines       <-chan string
	out         io.Writer
	alerts      alerts.Writer
	confirmWord string
	state       State
}

// New creates a Controller reading lines from in and writing to out.
// Per-record progress is printed as the client reports it.
func New(svc Service, in io.Reader, out io.Writer, opts ...Option) (*Controller, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		svc:         svc,
		in:          in,
		out:         out,
		alerts:      alerts.NewFormatWriter(out, output.FormatTable).WithColor(o.color),
		confirmWord: o.confirmWord,
		state:       StateMenu,
	}
	svc.OnDeleted(c.renderDeleted)
	svc.OnFailed(c.renderFailed)
	return c, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Run loops until the operator exits, input ends or ctx is cancelled.
// Input is read only while Run is active.
func (c *Controller) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	done := make(chan struct{})
	defer close(done)
	c.lines = scanLines(c.in, done)

	for c.state != StateExit {
		if ctx.Err() != nil {
			logger.Debug().Msg("Context cancelled, leaving menu")
			break
		}
		next := c.step(ctx)
		logger.Debug().Stringer("from", c.state).Stringer("to", next).Msg("State transition")
		c.state = next
	}
	c.state = StateExit
	fmt.Fprintln(c.out, "\nGoodbye!")
	return nil
}

// step performs the action of the current state and returns the next state.
func (c *Controller) step(ctx context.Context) State {
	switch c.state {
	case StateMenu:
		return c.menu(ctx)
	case StateListing:
		c.list(ctx)
		return StateMenu
	case StateConfirmOrphanPurge:
		return c.purgeOrphans(ctx)
	case StateConfirmFullPurge:
		return c.purgeAll(ctx)
	case StateTargetedDelete:
		return c.deleteOne(ctx)
	default:
		return StateExit
	}
}

func (c *Controller) menu(ctx context.Context) State {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(c.out, "\n%s\nUSER MANAGER\n%s\n", rule, rule)
	for _, item := range menu {
		fmt.Fprintf(c.out, "%s. %s\n", item.key, item.label)
	}
	fmt.Fprintln(c.out, rule)

	choice, ok := c.prompt(ctx, "\nChoose an option: ")
	if !ok {
		return StateExit
	}
	next, valid := Next(choice)
	if !valid {
		c.alert(alerts.Errorf("Invalid option %q", strings.TrimSpace(choice)))
		return StateMenu
	}
	return next
}

func (c *Controller) list(ctx context.Context) {
	result, err := c.svc.Reconcile(ctx)
	if err != nil {
		c.alert(alerts.NewError("Listing failed").WithError(err))
		return
	}
	c.renderResult(result)
}

func (c *Controller) purgeOrphans(ctx context.Context) State {
	fmt.Fprintln(c.out, "\nLooking for orphaned users...")
	result, err := c.svc.Reconcile(ctx)
	if err != nil {
		c.alert(alerts.NewError("Reconciliation failed").WithError(err))
		return StateMenu
	}
	if !result.HasOrphans() {
		c.alert(alerts.NewSuccess("No orphaned users found"))
		return StateMenu
	}

	details := make([]string, len(result.Orphans))
	for i, o := range result.Orphans {
		details[i] = fmt.Sprintf("%s (id: %s)", orUnknown(o.Email), o.ID)
	}
	c.alert(alerts.NewWarning(fmt.Sprintf("Found %d orphaned user(s):", len(result.Orphans))).WithDetails(details...))

	confirmed, ok := c.confirm(ctx, "Delete all orphaned users?")
	if !ok {
		return StateExit
	}
	if !confirmed {
		c.alert(alerts.NewInfo("Operation cancelled"))
		return StateMenu
	}

	out, err := c.svc.PurgeOrphans(ctx)
	if err != nil {
		c.alert(alerts.NewError("Orphan purge failed").WithError(err))
		return StateMenu
	}
	c.renderSummary(out)
	c.renderDrift(ctx, result.OrphanIDs(), out)
	return StateMenu
}

func (c *Controller) purgeAll(ctx context.Context) State {
	confirmed, ok := c.confirm(ctx, "WARNING: delete ALL users from both stores?")
	if !ok {
		return StateExit
	}
	if !confirmed {
		c.alert(alerts.NewInfo("Operation cancelled"))
		return StateMenu
	}

	out, _ := c.svc.PurgeAll(ctx)
	c.renderSummary(out)
	return StateMenu
}

func (c *Controller) deleteOne(ctx context.Context) State {
	email, ok := c.prompt(ctx, "\nEmail of the user to delete: ")
	if !ok {
		return StateExit
	}
	c.renderSummary(c.svc.DeleteUser(ctx, email))
	return StateMenu
}

// confirm asks a yes/no question. ok is false when input has ended.
func (c *Controller) confirm(ctx context.Context, question string) (confirmed, ok bool) {
	answer, ok := c.prompt(ctx, fmt.Sprintf("\n%s Type %q to confirm: ", question, c.confirmWord))
	if !ok {
		return false, false
	}
	return Confirm(answer, c.confirmWord), true
}

// prompt prints a prompt and reads one line. ok is false at end of input
// or when ctx is cancelled.
func (c *Controller) prompt(ctx context.Context, text string) (string, bool) {
	fmt.Fprint(c.out, text)
	select {
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
		}
		return line, ok
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false
	}
}

// scanLines feeds lines of r to a channel that is closed at end of input or
// once done is closed. A read already blocked on r finishes first.
func scanLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}

func (c *Controller) alert(a *alerts.Alert) {
	_ = c.alerts.WriteAlert(a)
}
