// Package interactive provides the menu command, the default when usersweep
// runs without a subcommand.
package interactive

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep"
	"github.com/agentstation/usersweep/internal/console"
)

// AppContext defines what the menu needs from the app.
type AppContext interface {
	Client(ctx context.Context) (usersweep.Client, error)
	ConfirmWord() string
	Color() bool
}

// NewCommand creates the menu command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:     "menu",
		GroupID: "core",
		Short:   "Run the interactive menu",
		Long: `Menu lists users, purges orphaned or all users and deletes single
users interactively. Every destructive choice asks for confirmation.

This is what usersweep runs when no subcommand is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd, app)
		},
	}
}

// Run connects to both stores and runs the menu on the command's input and
// output until the operator exits.
func Run(cmd *cobra.Command, app AppContext) error {
	ctx := cmd.Context()

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	ctrl, err := console.New(client, cmd.InOrStdin(), cmd.OutOrStdout(),
		console.WithConfirmWord(app.ConfirmWord()),
		console.WithColor(app.Color()),
	)
	if err != nil {
		return err
	}
	return ctrl.Run(ctx)
}
