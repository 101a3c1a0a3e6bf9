// Package config handles configuration for the language service, including
// defaults, a TOML file overlay, and command-line flags.
package config

import (
	"time"

	"github.com/langcentral/langcentral/internal/culture"
	"github.com/langcentral/langcentral/internal/flagx"
)

// DBType identifies the relational backend used by the preference store.
type DBType string

const (
	DBTypeSQLite   DBType = "sqlite"
	DBTypePostgres DBType = "postgres"
	DBTypeMySQL    DBType = "mysql"
)

// DatabaseConfig holds connection parameters for the preference store.
//
// Password is carried as a byte slice so the store can wipe it after the
// connection string has been built; it must not be read after the store has
// been constructed.
type DatabaseConfig struct {
	Type     DBType
	Host     string
	Port     string
	Name     string
	User     string
	Password []byte
}

// Config holds runtime settings resolved once at startup and treated as
// read-only afterwards.
//
// Fields:
//   - FallbackLanguage: culture used when neither a persisted preference nor
//     a mapped country is available.
//   - CountryLanguageMapping: ISO 3166-1 country code to culture.
//   - AdditionalCommandAliases: extra names registered for the lang command.
//   - ShouldPrintWelcomeMessage: send an informational join message.
//   - JoinNotifyDelay: delay before the join-time language notification, to
//     avoid racing other join messages.
//   - TickInterval: period of the main update loop.
//   - GeoIPDatabasePath: path to the MaxMind mmdb file; lookups are
//     best-effort and a missing file only disables country detection.
//   - Database: preference store connection parameters.
type Config struct {
	FallbackLanguage          culture.Culture
	CountryLanguageMapping    map[string]culture.Culture
	AdditionalCommandAliases  []string
	ShouldPrintWelcomeMessage bool
	JoinNotifyDelay           time.Duration
	TickInterval              time.Duration
	GeoIPDatabasePath         string
	Database                  DatabaseConfig
}

// DefaultConfigPath is used when no -c/-config flag is given.
const DefaultConfigPath = "plugin.toml"

// LoadDefaults populates Config with the defaults the plugin ships with.
func (c *Config) LoadDefaults() {
	c.FallbackLanguage = culture.MustParse("en")
	c.CountryLanguageMapping = map[string]culture.Culture{
		"JP": culture.MustParse("ja"),
		"US": culture.MustParse("en"),
	}
	c.AdditionalCommandAliases = []string{"language"}
	c.ShouldPrintWelcomeMessage = true
	c.JoinNotifyDelay = 5 * time.Second
	c.TickInterval = 50 * time.Millisecond
	c.GeoIPDatabasePath = "GeoLite2-City.mmdb"
	c.Database = DatabaseConfig{
		Type: DBTypeSQLite,
		Name: "langcentral.db",
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the TOML config file and finally from command-line flags.
//
// The file path comes from the -c/-config flags, falling back to
// DefaultConfigPath. When the file does not exist, a commented default
// config is written there first, then loaded.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	path := flagx.ConfigFileFlags()
	if path == "" {
		path = DefaultConfigPath
	}

	if err := parseTomlFile(cfg, path); err != nil {
		return nil, err
	}

	parseFlags(cfg)
	return cfg, nil
}
