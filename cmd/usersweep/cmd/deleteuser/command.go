// Package deleteuser provides the delete command, which removes one user by email.
package deleteuser

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/cmd/cmdutil"
	"github.com/agentstation/usersweep/internal/cmd/output"
)

// AppContext defines the interface that the delete command needs from the app.
type AppContext interface {
	Client(ctx context.Context) (usersweep.Client, error)
	OutputFormat() string
	ConfirmWord() string
}

// NewCommand creates the delete command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var flags *cmdutil.DestructiveFlags
	cmd := &cobra.Command{
		Use:     "delete <email>",
		GroupID: "management",
		Short:   "Delete one user by email from both stores",
		Long: `Delete looks up the account with the given email, deletes it from
the identity store and then deletes its profile document and verification
codes. If the account cannot be deleted, its document is left untouched.`,
		Example: `  usersweep delete ana@example.com
  usersweep delete ana@example.com --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args[0])
		},
	}
	flags = cmdutil.AddDestructiveFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, app AppContext, flags *cmdutil.DestructiveFlags, email string) error {
	ctx := cmd.Context()

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	if !flags.Yes {
		question := fmt.Sprintf("Delete user %s from both stores?", email)
		ok, err := cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), question, app.ConfirmWord())
		if err != nil || !ok {
			return err
		}
	}

	out := client.DeleteUser(ctx, email)
	if err := cmdutil.RenderOutcome(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), out); err != nil {
		return err
	}
	return cmdutil.OutcomeError(out)
}
