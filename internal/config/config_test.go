package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/parking")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "@every 1m", cfg.JobSchedule)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.False(t, cfg.SendGrid.Enabled())
	assert.False(t, cfg.Twilio.Enabled())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL not set")
}

func TestLoad_BadTimeout(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/parking")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConsole(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://parking.test/")
	t.Setenv("ADMIN_TOKEN", "tok")

	cfg, err := LoadConsole()
	require.NoError(t, err)
	assert.Equal(t, "http://parking.test", cfg.APIBaseURL)
	assert.Equal(t, "tok", cfg.AdminToken)
}
