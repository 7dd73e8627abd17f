// Package emoji provides symbol constants for CLI output.
// These symbols give the menu, reports and status lines one visual language.
package emoji

// Status symbols.
const (
	// Success marks a deleted record, a verified credential or a finished step.
	Success = "✓"

	// Error marks a failed delete, a missing credential or an unreachable store.
	Error = "✗"

	// Warning marks partial results: orphans found, cascade failures, aborted passes.
	Warning = "!"

	// Info marks neutral information such as counts and cancelled actions.
	Info = "i"
)

// Record symbols used in listings.
const (
	// Consistent marks a document whose account exists.
	Consistent = "="

	// Orphan marks a document whose account is gone.
	Orphan = "≠"

	// Bullet prefixes list items.
	Bullet = "-"
)
