// Package list provides the list command.
package list

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/cmd/emoji"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/reconciler"
)

// AppContext defines the interface that the list command needs from the app.
type AppContext interface {
	Client(ctx context.Context) (usersweep.Client, error)
	OutputFormat() string
	Logger() *zerolog.Logger
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List users in both stores and flag orphans",
		Long: `List shows every account in the identity store and every profile
document in the document store. Documents whose account no longer exists
are marked as orphans. Nothing is modified.`,
		Example: `  usersweep list                # tables on a terminal
  usersweep list --format json  # full reconciliation result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}
}

func run(cmd *cobra.Command, app AppContext) error {
	ctx := cmd.Context()

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	result, err := client.Reconcile(ctx)
	if err != nil {
		return fmt.Errorf("reconciling stores: %w", err)
	}
	app.Logger().Debug().Dur("took", result.Duration()).Msg(result.Summary())

	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
	}
	return printTables(cmd, result)
}

func printTables(cmd *cobra.Command, r *reconciler.Result) error {
	out := cmd.OutOrStdout()
	if err := output.NewFormatter(output.FormatTable).Format(out, output.ReconcileTables(r)); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nIdentity store: %d user(s)\n", r.IdentityCount)
	fmt.Fprintf(out, "Document store: %d document(s), %d consistent\n", r.DocumentCount, r.ConsistentCount)
	if r.HasOrphans() {
		fmt.Fprintf(out, "%s %d orphaned user(s) found, run 'usersweep purge orphans' to remove them\n",
			emoji.Warning, len(r.Orphans))
	}
	if n := len(r.Unlinked); n > 0 {
		fmt.Fprintf(out, "%s %d user(s) have no profile document\n", emoji.Info, n)
	}
	return nil
}
