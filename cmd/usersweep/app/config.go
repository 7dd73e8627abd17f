package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Credentials
	CredentialsFile string
	ProjectID       string

	// Stores
	DocumentStore      string
	MongoURI           string
	MongoDatabase      string
	PrimaryCollection  string
	CascadeCollections []string
	PageSize           int
	OperationTimeout   time.Duration

	// Interaction
	ConfirmWord string

	// Logging configuration
	LogLevel    string // --log-level flag
	EnvLogLevel string // LOG_LEVEL or log_level from config
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (USERSWEEP_ prefix)
// 3. .env files
// 4. Config file (~/.usersweep.yaml or ./.usersweep.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig("")
}

// LoadConfigFile loads configuration like LoadConfig but from an explicit
// config file, which must exist.
func LoadConfigFile(path string) (*Config, error) {
	return loadConfig(path)
}

func loadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(constants.EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", fmt.Sprintf("cannot read %s", configFile), err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".usersweep")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "cannot parse config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		CredentialsFile: v.GetString("credentials_file"),
		ProjectID:       v.GetString("project_id"),

		DocumentStore:      strings.ToLower(v.GetString("document_store")),
		MongoURI:           v.GetString("mongodb_uri"),
		MongoDatabase:      v.GetString("mongodb_database"),
		PrimaryCollection:  v.GetString("primary_collection"),
		CascadeCollections: splitList(v.GetStringSlice("cascade_collections")),
		PageSize:           v.GetInt("page_size"),
		OperationTimeout:   v.GetDuration("operation_timeout"),

		ConfirmWord: v.GetString("confirm_word"),

		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("document_store", constants.BackendFirestore)
	v.SetDefault("primary_collection", constants.PrimaryCollection)
	v.SetDefault("cascade_collections", constants.DefaultCascadeCollections())
	v.SetDefault("page_size", constants.DefaultPageSize)
	v.SetDefault("operation_timeout", constants.DefaultOperationTimeout)
	v.SetDefault("confirm_word", constants.DefaultConfirmWord)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// UpdateFromFlags applies the flags set on the command line. Flags left at
// their defaults do not override file or environment values.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "verbose":
			c.Verbose = value == "true"
		case "quiet":
			c.Quiet = value == "true"
		case "no-color":
			c.NoColor = value == "true"
		case "format":
			c.Format = value
		case "log-level":
			c.LogLevel = value
		case "credentials":
			c.CredentialsFile = value
		case "project":
			c.ProjectID = value
		}
	})
}

// Validate checks the configuration before any store is opened.
func (c *Config) Validate() error {
	switch c.DocumentStore {
	case constants.BackendFirestore:
	case constants.BackendMongoDB:
		if c.MongoURI == "" {
			return errors.NewValidationError("mongodb_uri", nil, "required when document_store is mongodb")
		}
		if c.MongoDatabase == "" {
			return errors.NewValidationError("mongodb_database", nil, "required when document_store is mongodb")
		}
	default:
		return errors.NewValidationError("document_store", c.DocumentStore,
			fmt.Sprintf("must be %s or %s", constants.BackendFirestore, constants.BackendMongoDB))
	}
	if c.PrimaryCollection == "" {
		return errors.NewValidationError("primary_collection", nil, "cannot be empty")
	}
	if strings.TrimSpace(c.ConfirmWord) == "" {
		return errors.NewValidationError("confirm_word", nil, "cannot be empty")
	}
	if c.PageSize < 0 || c.PageSize > constants.MaxPageSize {
		return errors.NewValidationError("page_size", c.PageSize,
			fmt.Sprintf("must be between 1 and %d", constants.MaxPageSize))
	}
	if c.OperationTimeout < 0 {
		return errors.NewValidationError("operation_timeout", c.OperationTimeout, "cannot be negative")
	}
	return nil
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set are kept, and .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// splitList accepts both YAML lists and comma separated environment values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
