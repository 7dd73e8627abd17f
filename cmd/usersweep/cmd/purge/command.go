// Package purge provides the purge command and its orphans and all subcommands.
package purge

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/cmd/alerts"
	"github.com/agentstation/usersweep/internal/cmd/cmdutil"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

// AppContext defines the interface that purge commands need from the app.
type AppContext interface {
	Client(ctx context.Context) (usersweep.Client, error)
	OutputFormat() string
	ConfirmWord() string
	Logger() *zerolog.Logger
}

// NewCommand creates the purge command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "purge",
		GroupID: "management",
		Short:   "Delete orphaned users or every user",
		Long: `Purge deletes users in bulk. A record that cannot be deleted is
reported and the purge continues with the next one.

Available subcommands:
  orphans  - profile documents whose account no longer exists
  all      - every account and every profile document`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewOrphansCommand(app))
	cmd.AddCommand(NewAllCommand(app))

	return cmd
}

// NewOrphansCommand creates the purge orphans subcommand.
func NewOrphansCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.DestructiveFlags
	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "Delete profile documents whose account no longer exists",
		Long: `Orphans reconciles both stores and deletes every orphaned profile
document together with its verification codes. Accounts are never deleted.

Both stores are listed one after the other, so an account created between
the two listings can show up as an orphan. Run it when sign-ups are quiet.`,
		Example: `  usersweep purge orphans        # shows orphans, then asks
  usersweep purge orphans --yes  # no prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOrphans(cmd, app, flags)
		},
	}
	flags = cmdutil.AddDestructiveFlags(cmd)
	return cmd
}

func runOrphans(cmd *cobra.Command, app AppContext, flags *cmdutil.DestructiveFlags) error {
	ctx := cmd.Context()
	format := output.DetectFormat(app.OutputFormat())

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	result, err := client.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconciling stores: %w", err)
	}
	if !result.HasOrphans() {
		app.Logger().Info().Msg(result.Summary())
		if format == output.FormatTable {
			fmt.Fprintln(cmd.OutOrStdout(), "No orphaned users found")
		}
		return nil
	}

	if !flags.Yes {
		if err := output.NewFormatter(output.FormatTable).Format(cmd.ErrOrStderr(), orphanTable(result)); err != nil {
			return err
		}
		question := fmt.Sprintf("Delete %d orphaned profile document(s) from %s?", len(result.Orphans), result.Collection)
		ok, err := cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question, app.ConfirmWord())
		if err != nil || !ok {
			return err
		}
	}

	out, err := client.PurgeOrphans(ctx)
	if err != nil {
		return err
	}
	if err := cmdutil.RenderOutcome(cmd.OutOrStdout(), format, out); err != nil {
		return err
	}
	unlisted, skipped := out.Drift(result.OrphanIDs())
	reportDrift(cmd, app, unlisted, skipped)
	return cmdutil.OutcomeError(out)
}

// reportDrift warns on stderr when the purge deleted a different set of
// orphans than the preview listed.
func reportDrift(cmd *cobra.Command, app AppContext, unlisted, skipped []string) {
	if len(unlisted) == 0 && len(skipped) == 0 {
		return
	}
	app.Logger().Warn().
		Strs("unlisted", unlisted).
		Strs("skipped", skipped).
		Msg("Orphans changed between preview and purge")

	a := alerts.NewWarning("Orphans changed between preview and purge")
	for _, id := range unlisted {
		a.WithDetails("purged without being listed: " + id)
	}
	for _, id := range skipped {
		a.WithDetails("listed but no longer orphaned: " + id)
	}
	_ = alerts.NewFormatWriter(cmd.ErrOrStderr(), output.FormatTable).WriteAlert(a)
}

func orphanTable(r *reconciler.Result) output.Data {
	d := output.Data{
		Title:   "Orphaned users",
		Headers: []string{"ID", "Email"},
	}
	for _, o := range r.Orphans {
		email := o.Email
		if email == "" {
			email = "-"
		}
		d.Rows = append(d.Rows, []string{o.ID, email})
	}
	return d
}

// NewAllCommand creates the purge all subcommand.
func NewAllCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.DestructiveFlags
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Delete every account and every profile document",
		Long: `All deletes every account from the identity store, then every
profile document and its verification codes from the document store.
The two passes are independent: if one cannot list its records the other
still runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAll(cmd, app, flags)
		},
	}
	flags = cmdutil.AddDestructiveFlags(cmd)
	return cmd
}

func runAll(cmd *cobra.Command, app AppContext, flags *cmdutil.DestructiveFlags) error {
	ctx := cmd.Context()

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	if !flags.Yes {
		question := "Delete ALL users from both stores? This cannot be undone."
		ok, err := cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question, app.ConfirmWord())
		if err != nil || !ok {
			return err
		}
	}

	out, err := client.PurgeAll(ctx)
	if err != nil {
		app.Logger().Warn().Err(err).Msg("Purge finished with aborted passes")
	}
	if err := cmdutil.RenderOutcome(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), out); err != nil {
		return err
	}
	return cmdutil.OutcomeError(out)
}
