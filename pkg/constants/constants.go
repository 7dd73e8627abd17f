// Package constants provides shared constants used throughout the usersweep codebase.
// This includes collection names, timeouts, limits, and file permissions
// that should be consistent across the application.
package constants

import "time"

// Collection constants name the document-store collections touched by the tool
const (
	// PrimaryCollection holds one profile document per user, keyed by the identity id
	PrimaryCollection = "usuarios"

	// VerificationCodesCollection holds per-user verification codes
	VerificationCodesCollection = "verification_codes"

	// LegacyVerificationCodesCollection holds per-user verification codes written by older app builds
	LegacyVerificationCodesCollection = "codigos_verificacao"
)

// DefaultCascadeCollections returns the collections deleted alongside a primary document.
func DefaultCascadeCollections() []string {
	return []string{VerificationCodesCollection, LegacyVerificationCodesCollection}
}

// Document field names used to decode profile documents
const (
	// FieldEmail is the profile email field
	FieldEmail = "email"

	// FieldName is the profile display name field
	FieldName = "nome"

	// FieldNameFallback is consulted when FieldName is absent
	FieldNameFallback = "name"

	// FieldEmailVerified is the profile verification flag
	FieldEmailVerified = "email_verificado"

	// FieldEmailVerifiedFallback is consulted when FieldEmailVerified is absent
	FieldEmailVerifiedFallback = "emailVerified"
)

// Store names used in errors, logs and reports
const (
	// IdentityStore names the authoritative account registry
	IdentityStore = "identity"

	// DocumentStore names the profile document database
	DocumentStore = "documents"
)

// Document store backends
const (
	// BackendFirestore selects Cloud Firestore as the document store
	BackendFirestore = "firestore"

	// BackendMongoDB selects MongoDB as the document store
	BackendMongoDB = "mongodb"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultOperationTimeout bounds a single store round trip
	DefaultOperationTimeout = 30 * time.Second

	// StartupTimeout bounds client initialization and the reachability check
	StartupTimeout = 20 * time.Second

	// ShutdownTimeout bounds closing store clients
	ShutdownTimeout = 5 * time.Second
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the number of identity records requested per page
	DefaultPageSize = 1000

	// MaxPageSize is the largest page the identity store accepts
	MaxPageSize = 1000
)

// Interaction constants
const (
	// DefaultConfirmWord is the affirmative answer that unlocks destructive actions
	DefaultConfirmWord = "yes"

	// DefaultCredentialsFile is the credentials file looked up in the working directory
	DefaultCredentialsFile = "firebase-admin-sdk.json"

	// CredentialsEnvVar is the standard Google credentials environment variable
	CredentialsEnvVar = "GOOGLE_APPLICATION_CREDENTIALS"

	// EnvPrefix is the prefix for usersweep environment variables
	EnvPrefix = "USERSWEEP"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
