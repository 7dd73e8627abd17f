// Package cmdutil provides shared flags, prompts and rendering for usersweep commands.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds flags shared by every command.
type GlobalFlags struct {
	Config      string
	Credentials string
	Project     string
	Format      string
	LogLevel    string
	Quiet       bool
	Verbose     bool
	NoColor     bool
}

// AddGlobalFlags adds the persistent flags to the root command.
func AddGlobalFlags(cmd *cobra.Command) *GlobalFlags {
	flags := &GlobalFlags{}

	cmd.PersistentFlags().StringVar(&flags.Config, "config", "",
		"config file (default is $HOME/.usersweep.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Credentials, "credentials", "",
		"service account credentials file (default ./firebase-admin-sdk.json)")
	cmd.PersistentFlags().StringVar(&flags.Project, "project", "",
		"Google Cloud project id (default from credentials)")
	cmd.PersistentFlags().StringVarP(&flags.Format, "format", "o", "",
		"output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "",
		"log level: trace, debug, info, warn, error (overrides -v/-q)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"verbose output (shortcut for --log-level=debug)")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"minimal output (shortcut for --log-level=warn)")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"disable colored output")

	return flags
}

// DestructiveFlags holds flags for commands that delete records.
type DestructiveFlags struct {
	Yes bool
}

// AddDestructiveFlags adds the confirmation bypass flag to a command.
func AddDestructiveFlags(cmd *cobra.Command) *DestructiveFlags {
	flags := &DestructiveFlags{}

	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false,
		"skip the confirmation prompt")

	return flags
}
