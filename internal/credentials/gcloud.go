package credentials

import (
	"os"
	"path/filepath"
	"strings"
)

// ReadGCloudProject reads core.project from the active gcloud configuration.
// Returns empty string if no configuration is found.
func ReadGCloudProject() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return readGCloudValue(home, "core", "project")
}

func readGCloudValue(home, section, key string) string {
	name := activeConfig(home)
	path := filepath.Join(home, ".config/gcloud/configurations", "config_"+name)

	data, err := os.ReadFile(path) // #nosec G304 -- well-known gcloud config file
	if err != nil {
		return ""
	}
	return parseINIValue(string(data), section, key)
}

// activeConfig returns the active gcloud configuration name, "default" when unset.
func activeConfig(home string) string {
	data, err := os.ReadFile(filepath.Join(home, ".config/gcloud/active_config")) // #nosec G304
	if err != nil {
		return "default"
	}
	if name := strings.TrimSpace(string(data)); name != "" {
		return name
	}
	return "default"
}

// parseINIValue extracts key from section in INI-style content.
func parseINIValue(content, section, key string) string {
	var current string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			current = strings.Trim(line, "[]")
			continue
		}
		if current != section {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(name) == key {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
