package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep/cmd/usersweep/cmd/auth"
	"github.com/agentstation/usersweep/cmd/usersweep/cmd/deleteuser"
	"github.com/agentstation/usersweep/cmd/usersweep/cmd/interactive"
	"github.com/agentstation/usersweep/cmd/usersweep/cmd/list"
	"github.com/agentstation/usersweep/cmd/usersweep/cmd/purge"
	"github.com/agentstation/usersweep/cmd/usersweep/cmd/version"
	"github.com/agentstation/usersweep/internal/cmd/cmdutil"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/pkg/logging"
)

// Execute runs the usersweep CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "usersweep",
		Short:   "Reconcile and purge users across Firebase Auth and the document store",
		Version: a.version,
		Long: `Usersweep compares the accounts in Firebase Authentication with the
profile documents in Firestore (or MongoDB). It lists both stores, finds
profile documents whose account no longer exists, and deletes them, every
user, or a single user by email.

Without a subcommand usersweep runs an interactive menu.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setupCommand,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return interactive.Run(cmd, a)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	cmdutil.AddGlobalFlags(rootCmd)

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("usersweep version {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. Flags take precedence over
// the config file and environment.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if path := mustGetString(cmd, "config"); path != "" {
		config, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(cmd.Flags())

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(interactive.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(purge.NewCommand(a))
	rootCmd.AddCommand(deleteuser.NewCommand(a))
	rootCmd.AddCommand(auth.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
