// Package auth provides credential diagnostics.
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/usersweep/internal/cmd/emoji"
	"github.com/agentstation/usersweep/internal/cmd/output"
	"github.com/agentstation/usersweep/internal/credentials"
)

// AppContext defines the interface that auth commands need from the app.
type AppContext interface {
	CredentialsFile() string
	ProjectID() string
	OutputFormat() string
}

// NewCommand creates the auth command. Without a subcommand it shows status.
func NewCommand(app AppContext) *cobra.Command {
	status := NewStatusCommand(app)
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Inspect the configured credentials",
		RunE:    status.RunE,
	}
	cmd.AddCommand(status)
	return cmd
}

// NewStatusCommand creates the auth status subcommand.
func NewStatusCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credentials usersweep would use",
		Long: `Status reports where the credentials file was found, its type, and
the project and account it belongs to, masked. The stores are not contacted.

Search order:
  --credentials flag or credentials_file config key
  USERSWEEP_CREDENTIALS_FILE
  GOOGLE_APPLICATION_CREDENTIALS
  ./firebase-admin-sdk.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, app)
		},
	}
}

func runStatus(cmd *cobra.Command, app AppContext) error {
	details := credentials.Inspect(app.CredentialsFile(), app.ProjectID())
	out := cmd.OutOrStdout()

	format := output.DetectFormat(app.OutputFormat())
	if format != output.FormatTable {
		if err := output.NewFormatter(format).Format(out, details); err != nil {
			return err
		}
	} else {
		printDetails(cmd, details)
	}

	if details.State != credentials.StateConfigured {
		return fmt.Errorf("credentials %s", details.State)
	}
	return nil
}

func printDetails(cmd *cobra.Command, d *credentials.Details) {
	out := cmd.OutOrStdout()
	if d.State != credentials.StateConfigured {
		fmt.Fprintf(out, "%s %s\n", emoji.Error, d.Brief())
		if d.State == credentials.StateMissing {
			fmt.Fprintln(out, "   "+d.Error)
		}
		return
	}

	fmt.Fprintf(out, "%s %s\n\n", emoji.Success, d.Brief())
	modified := "-"
	if !d.Modified.IsZero() {
		modified = d.Modified.Format("2006-01-02 15:04:05")
	}
	table := output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"File", d.Path},
			{"Found via", d.Source},
			{"Type", d.Type},
			{"Account", d.Account},
			{"Project", orDash(d.Project) + " (" + d.ProjectSource + ")"},
			{"Key ID", orDash(d.KeyID)},
			{"Modified", modified},
		},
	}
	_ = output.NewFormatter(output.FormatTable).Format(out, table)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
