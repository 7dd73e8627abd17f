// Package credentials locates and inspects the Google credentials file
// used to reach Firebase Authentication and the document store.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

const (
	// TypeServiceAccount represents a service account key, the usual admin SDK credential.
	TypeServiceAccount = "service_account"
	// TypeAuthorizedUser represents user credentials from gcloud auth.
	TypeAuthorizedUser = "authorized_user"
)

// EnvCredentialsFile is the usersweep-specific credentials path variable.
const EnvCredentialsFile = constants.EnvPrefix + "_CREDENTIALS_FILE"

// Sources describe where a credentials file was found.
const (
	SourceFlag       = "flag (--credentials)"
	SourceEnv        = "env (" + EnvCredentialsFile + ")"
	SourceGoogleEnv  = "env (" + constants.CredentialsEnvVar + ")"
	SourceWorkingDir = "working directory"
)

// File represents a credentials JSON file.
type File struct {
	Type           string `json:"type"`
	ProjectID      string `json:"project_id"`
	QuotaProjectID string `json:"quota_project_id"`
	ClientEmail    string `json:"client_email"`
	ClientID       string `json:"client_id"`
	PrivateKeyID   string `json:"private_key_id"`
	PrivateKey     string `json:"private_key"`
	UniverseDomain string `json:"universe_domain"`
}

// Locate finds the credentials file. An explicit path must exist; otherwise
// the search order is:
//  1. USERSWEEP_CREDENTIALS_FILE environment variable
//  2. GOOGLE_APPLICATION_CREDENTIALS environment variable
//  3. firebase-admin-sdk.json in the working directory
func Locate(explicit string) (path, source string, err error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", "", errors.NewConfigError("credentials", fmt.Sprintf("credentials file %s not readable", explicit), err)
		}
		return explicit, SourceFlag, nil
	}

	candidates := []struct{ path, source string }{
		{os.Getenv(EnvCredentialsFile), SourceEnv},
		{os.Getenv(constants.CredentialsEnvVar), SourceGoogleEnv},
		{constants.DefaultCredentialsFile, SourceWorkingDir},
	}
	for _, c := range candidates {
		if c.path == "" {
			continue
		}
		if _, err := os.Stat(c.path); err == nil {
			return c.path, c.source, nil
		}
	}

	return "", "", errors.NewConfigError("credentials",
		fmt.Sprintf("no credentials file found; pass --credentials, set %s or %s, or place %s in the working directory",
			EnvCredentialsFile, constants.CredentialsEnvVar, constants.DefaultCredentialsFile),
		errors.ErrNotFound)
}

// ParseFile reads and validates a credentials JSON file.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch file.Type {
	case "":
		return nil, fmt.Errorf("missing 'type' field")
	case TypeServiceAccount:
		if file.ClientEmail == "" {
			return nil, fmt.Errorf("service account is missing 'client_email'")
		}
		if file.PrivateKey == "" {
			return nil, fmt.Errorf("service account is missing 'private_key'")
		}
	case TypeAuthorizedUser:
		if file.ClientID == "" {
			return nil, fmt.Errorf("user credentials are missing 'client_id'")
		}
	default:
		return nil, fmt.Errorf("unknown type: %s", file.Type)
	}

	return &file, nil
}

// Load locates and parses the credentials file. Errors are configuration
// errors and end startup.
func Load(explicit string) (*File, string, error) {
	path, _, err := Locate(explicit)
	if err != nil {
		return nil, "", err
	}
	file, err := ParseFile(path)
	if err != nil {
		return nil, path, errors.NewConfigError("credentials", fmt.Sprintf("invalid credentials file %s", path), err)
	}
	return file, path, nil
}
