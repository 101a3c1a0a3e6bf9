package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "en", cfg.FallbackLanguage.Tag())
	assert.Equal(t, "ja", cfg.CountryLanguageMapping["JP"].Tag())
	assert.Equal(t, []string{"language"}, cfg.AdditionalCommandAliases)
	assert.True(t, cfg.ShouldPrintWelcomeMessage)
	assert.Equal(t, 5*time.Second, cfg.JoinNotifyDelay)
	assert.Equal(t, 50*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, DBTypeSQLite, cfg.Database.Type)
	assert.Equal(t, "langcentral.db", cfg.Database.Name)
}
