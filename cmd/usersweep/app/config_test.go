package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/usersweep/pkg/constants"
	"github.com/agentstation/usersweep/pkg/errors"
)

// isolate moves into an empty directory with an empty HOME and no
// usersweep environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"USERSWEEP_CONFIG", "USERSWEEP_CREDENTIALS_FILE", "USERSWEEP_PROJECT_ID",
		"USERSWEEP_DOCUMENT_STORE", "USERSWEEP_PRIMARY_COLLECTION", "USERSWEEP_CASCADE_COLLECTIONS",
		"USERSWEEP_CONFIRM_WORD", "USERSWEEP_PAGE_SIZE", "USERSWEEP_OPERATION_TIMEOUT",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "NO_COLOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, constants.BackendFirestore, config.DocumentStore)
	assert.Equal(t, constants.PrimaryCollection, config.PrimaryCollection)
	assert.Equal(t, constants.DefaultCascadeCollections(), config.CascadeCollections)
	assert.Equal(t, constants.DefaultConfirmWord, config.ConfirmWord)
	assert.Equal(t, constants.DefaultPageSize, config.PageSize)
	assert.Equal(t, constants.DefaultOperationTimeout, config.OperationTimeout)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Empty(t, config.ConfigFile)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("USERSWEEP_PRIMARY_COLLECTION", "profiles")
	t.Setenv("USERSWEEP_CASCADE_COLLECTIONS", "codes, tokens")
	t.Setenv("USERSWEEP_CONFIRM_WORD", "sim")
	t.Setenv("USERSWEEP_OPERATION_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "profiles", config.PrimaryCollection)
	assert.Equal(t, []string{"codes", "tokens"}, config.CascadeCollections)
	assert.Equal(t, "sim", config.ConfirmWord)
	assert.Equal(t, 5*time.Second, config.OperationTimeout)
	assert.Equal(t, "debug", config.EnvLogLevel)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("USERSWEEP_PROJECT_ID=from-env-file\nUSERSWEEP_CONFIRM_WORD=base\n"), constants.FilePermissions))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"),
		[]byte("USERSWEEP_CONFIRM_WORD=local\n"), constants.FilePermissions))
	t.Cleanup(func() {
		os.Unsetenv("USERSWEEP_PROJECT_ID")
		os.Unsetenv("USERSWEEP_CONFIRM_WORD")
	})

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", config.ProjectID)
	assert.Equal(t, "local", config.ConfirmWord)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := `document_store: mongodb
mongodb_uri: mongodb://localhost:27017
mongodb_database: app
cascade_collections: []
page_size: 200
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".usersweep.yaml"), []byte(yaml), constants.FilePermissions))

	t.Run("discovered in home", func(t *testing.T) {
		config, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, constants.BackendMongoDB, config.DocumentStore)
		assert.Equal(t, "app", config.MongoDatabase)
		assert.Empty(t, config.CascadeCollections)
		assert.Equal(t, 200, config.PageSize)
		assert.NotEmpty(t, config.ConfigFile)
		assert.NoError(t, config.Validate())
	})

	t.Run("explicit path", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(other, []byte("primary_collection: people\n"), constants.FilePermissions))

		config, err := LoadConfigFile(other)
		require.NoError(t, err)
		assert.Equal(t, "people", config.PrimaryCollection)
		assert.Equal(t, other, config.ConfigFile)
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)
		var cfgErr *errors.ConfigError
		assert.ErrorAs(t, err, &cfgErr)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DocumentStore:     constants.BackendFirestore,
			PrimaryCollection: constants.PrimaryCollection,
			ConfirmWord:       "yes",
			PageSize:          100,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.DocumentStore = "dynamo" }, field: "document_store"},
		{name: "mongo without uri", mutate: func(c *Config) {
			c.DocumentStore = constants.BackendMongoDB
			c.MongoDatabase = "app"
		}, field: "mongodb_uri"},
		{name: "mongo without database", mutate: func(c *Config) {
			c.DocumentStore = constants.BackendMongoDB
			c.MongoURI = "mongodb://localhost"
		}, field: "mongodb_database"},
		{name: "empty collection", mutate: func(c *Config) { c.PrimaryCollection = "" }, field: "primary_collection"},
		{name: "blank confirm word", mutate: func(c *Config) { c.ConfirmWord = "  " }, field: "confirm_word"},
		{name: "page size too large", mutate: func(c *Config) { c.PageSize = constants.MaxPageSize + 1 }, field: "page_size"},
		{name: "negative timeout", mutate: func(c *Config) { c.OperationTimeout = -time.Second }, field: "operation_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := config.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *errors.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{CredentialsFile: "from-config.json", ProjectID: "from-config", Format: "yaml"}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("credentials", "", "")
	flags.String("project", "", "")
	flags.String("format", "", "")
	flags.String("log-level", "", "")
	flags.BoolP("verbose", "v", false, "")
	require.NoError(t, flags.Parse([]string{"--credentials", "flag.json", "-v"}))

	config.UpdateFromFlags(flags)

	assert.Equal(t, "flag.json", config.CredentialsFile)
	assert.Equal(t, "from-config", config.ProjectID, "unset flags keep config values")
	assert.Equal(t, "yaml", config.Format)
	assert.True(t, config.Verbose)
	assert.Empty(t, config.LogLevel)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a,b", " c "}))
	assert.Nil(t, splitList([]string{"", " , "}))
	assert.Nil(t, splitList(nil))
}
