package credentials

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// State represents the credential state.
type State int

const (
	// StateConfigured means a valid credentials file was found.
	StateConfigured State = iota
	// StateMissing means no credentials file was found.
	StateMissing
	// StateInvalid means a file was found but could not be used.
	StateInvalid
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissing:
		return "missing"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Details describes the credentials usersweep would start with. Project and
// account are masked.
type Details struct {
	State         State     `json:"state" yaml:"state"`
	Path          string    `json:"path,omitempty" yaml:"path,omitempty"`
	Source        string    `json:"source,omitempty" yaml:"source,omitempty"`
	Type          string    `json:"type,omitempty" yaml:"type,omitempty"`
	Account       string    `json:"account,omitempty" yaml:"account,omitempty"`
	Project       string    `json:"project,omitempty" yaml:"project,omitempty"`
	ProjectSource string    `json:"project_source,omitempty" yaml:"project_source,omitempty"`
	KeyID         string    `json:"key_id,omitempty" yaml:"key_id,omitempty"`
	Modified      time.Time `json:"modified,omitzero" yaml:"modified,omitempty"`
	Error         string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// Inspect builds the credential details without contacting any store.
// project is the configured project override, if any.
func Inspect(explicit, project string) *Details {
	path, source, err := Locate(explicit)
	if err != nil {
		return &Details{State: StateMissing, Error: err.Error()}
	}

	file, err := ParseFile(path)
	if err != nil {
		return &Details{
			State:  StateInvalid,
			Path:   path,
			Source: source,
			Error:  fmt.Sprintf("credentials file invalid: %v", err),
		}
	}

	d := &Details{
		State:    StateConfigured,
		Path:     path,
		Source:   source,
		Type:     credentialType(file.Type),
		Account:  MaskEmail(accountIdentifier(file)),
		KeyID:    Mask(file.PrivateKeyID),
		Modified: fileModTime(path),
	}
	resolved, from := ResolveProject(file, project)
	d.Project, d.ProjectSource = Mask(resolved), from
	return d
}

// ResolveProject determines the project id.
//
// Priority order:
//  1. explicit override (--project or project_id config)
//  2. credentials project_id
//  3. credentials quota_project_id
//  4. GOOGLE_CLOUD_PROJECT environment variable
//  5. gcloud config (core.project)
func ResolveProject(file *File, override string) (project, source string) {
	if override != "" {
		return override, "config"
	}
	if file != nil && file.ProjectID != "" {
		return file.ProjectID, "credentials (project_id)"
	}
	if file != nil && file.QuotaProjectID != "" {
		return file.QuotaProjectID, "credentials (quota_project_id)"
	}
	if env := os.Getenv("GOOGLE_CLOUD_PROJECT"); env != "" {
		return env, "env (GOOGLE_CLOUD_PROJECT)"
	}
	if gcloud := ReadGCloudProject(); gcloud != "" {
		return gcloud, "gcloud config"
	}
	return "", "not set"
}

// Brief creates a one-line summary of the credential state.
func (d *Details) Brief() string {
	switch d.State {
	case StateMissing:
		return "No credentials found"
	case StateInvalid:
		return d.Error
	}

	parts := []string{d.Type}
	if d.Project != "" {
		parts = append(parts, "Project: "+d.Project)
	} else {
		parts = append(parts, "No project set")
	}
	if d.Account != "" {
		parts = append(parts, "Account: "+d.Account)
	}
	return strings.Join(parts, ", ")
}

func credentialType(t string) string {
	if t == TypeServiceAccount {
		return "Service Account"
	}
	return "User Credentials"
}

// accountIdentifier prefers the client email, falling back to the client ID.
func accountIdentifier(file *File) string {
	if file.ClientEmail != "" {
		return file.ClientEmail
	}
	return file.ClientID
}

func fileModTime(path string) time.Time {
	if stat, err := os.Stat(path); err == nil {
		return stat.ModTime()
	}
	return time.Time{}
}

// Mask keeps the first three and last two characters of s.
// Values of five characters or fewer are fully masked.
func Mask(s string) string {
	n := len(s)
	switch {
	case n == 0:
		return ""
	case n <= 5:
		return strings.Repeat("*", n)
	default:
		return s[:3] + strings.Repeat("*", n-5) + s[n-2:]
	}
}

// MaskEmail masks the local part and the first domain label of an email,
// the label that carries the project id for service accounts.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return Mask(email)
	}
	label, rest, hasRest := strings.Cut(domain, ".")
	if hasRest {
		return Mask(local) + "@" + Mask(label) + "." + rest
	}
	return Mask(local) + "@" + Mask(domain)
}
