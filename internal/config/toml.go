package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/langcentral/langcentral/internal/culture"
)

// duration allows TOML values like "5s" to decode into time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// tomlConfig is an intermediate DTO used only for reading the TOML file.
// After decoding, its fields are validated and copied into Config.
type tomlConfig struct {
	Settings struct {
		FallbackLanguage          string            `toml:"fallback_language"`
		LanguageMapping           map[string]string `toml:"language_mapping"`
		AdditionalCommandAliases  []string          `toml:"additional_command_aliases"`
		ShouldPrintWelcomeMessage bool              `toml:"should_print_welcome_message"`
		JoinNotifyDelay           duration          `toml:"join_notify_delay"`
		TickInterval              duration          `toml:"tick_interval"`
		GeoIPDatabaseFile         string            `toml:"geoip_database_file"`
	} `toml:"settings"`
	Database struct {
		Type     string `toml:"type"`
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Name     string `toml:"name"`
		User     string `toml:"user"`
		Password string `toml:"password"`
	} `toml:"database"`
}

// parseTomlFile loads configuration values from the TOML file at path into
// the provided Config. If the file does not exist, a commented default
// config is written first so operators have something to edit.
//
// An invalid culture tag in fallback_language or language_mapping is a
// startup error: the config must fail loudly rather than let the server run
// with a half-parsed language table.
func parseTomlFile(config *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefaultConfig(path); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}

	c := &tomlConfig{}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	if c.Settings.FallbackLanguage != "" {
		fallback, err := culture.Parse(c.Settings.FallbackLanguage)
		if err != nil {
			return fmt.Errorf("fallback_language: %w", err)
		}
		config.FallbackLanguage = fallback
	}

	if c.Settings.LanguageMapping != nil {
		mapping := make(map[string]culture.Culture, len(c.Settings.LanguageMapping))
		for country, tag := range c.Settings.LanguageMapping {
			cu, err := culture.Parse(tag)
			if err != nil {
				return fmt.Errorf("language_mapping[%s]: %w", country, err)
			}
			mapping[country] = cu
		}
		config.CountryLanguageMapping = mapping
	}

	if c.Settings.AdditionalCommandAliases != nil {
		config.AdditionalCommandAliases = c.Settings.AdditionalCommandAliases
	}
	if md.IsDefined("settings", "should_print_welcome_message") {
		config.ShouldPrintWelcomeMessage = c.Settings.ShouldPrintWelcomeMessage
	}
	if c.Settings.JoinNotifyDelay.Duration > 0 {
		config.JoinNotifyDelay = c.Settings.JoinNotifyDelay.Duration
	}
	if c.Settings.TickInterval.Duration > 0 {
		config.TickInterval = c.Settings.TickInterval.Duration
	}
	if c.Settings.GeoIPDatabaseFile != "" {
		config.GeoIPDatabasePath = c.Settings.GeoIPDatabaseFile
	}

	if c.Database.Type != "" {
		switch DBType(c.Database.Type) {
		case DBTypeSQLite, DBTypePostgres, DBTypeMySQL:
			config.Database.Type = DBType(c.Database.Type)
		default:
			return fmt.Errorf("unsupported database type %q", c.Database.Type)
		}
	}
	if c.Database.Host != "" {
		config.Database.Host = c.Database.Host
	}
	if c.Database.Port != "" {
		config.Database.Port = c.Database.Port
	}
	if c.Database.Name != "" {
		config.Database.Name = c.Database.Name
	}
	if c.Database.User != "" {
		config.Database.User = c.Database.User
	}
	if c.Database.Password != "" {
		config.Database.Password = []byte(c.Database.Password)
	}

	return nil
}

const defaultConfig = `[settings]
# Use this language code if language_mapping has no entry for the country
# detected by GeoIP. See ISO 639 for available language codes.
fallback_language = "en"

# Additional aliases registered for the lang command.
additional_command_aliases = ["language"]

# Send an informational message on join so players know the lang command exists.
should_print_welcome_message = true

# Delay before the join-time language notification.
join_notify_delay = "5s"

# Main update loop period.
tick_interval = "50ms"

# MaxMind database used for client country detection. Lookups are best-effort;
# a missing file only disables country detection.
geoip_database_file = "GeoLite2-City.mmdb"

# Maps ISO 3166-1 country codes to ISO 639 language codes.
[settings.language_mapping]
JP = "ja"
US = "en"

[database]
# sqlite, postgres or mysql. For sqlite, "name" is the database file name.
type = "sqlite"
name = "langcentral.db"
host = ""
port = ""
user = ""
password = ""
`

func writeDefaultConfig(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o600)
}
