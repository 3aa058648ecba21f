package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-secret-access-secret-0123456789"
	testRefreshSecret = "refresh-secret-refresh-secret-0123456789"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_ACCESS_SECRET", testAccessSecret)
	t.Setenv("JWT_REFRESH_SECRET", testRefreshSecret)
}

func TestParse_Defaults(t *testing.T) {
	setSecrets(t)
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "rsvp.submitted", cfg.KafkaTopic)
	assert.Equal(t, int64(10), cfg.SubmitLimitPerMin)
	assert.Equal(t, 60, cfg.OverviewCacheSecs)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.TrustProxy)
	assert.Nil(t, cfg.ProxyList())
}

func TestParse_FromEnvironment(t *testing.T) {
	setSecrets(t)
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("CORS_ORIGINS", "https://fest.example.ch")
	t.Setenv("ADMIN_EMAIL", " Orga@Example.CH ")
	t.Setenv("EVENT_TIMEZONE", "Europe/Zurich")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, []string{"https://fest.example.ch"}, cfg.CORSOrigins)
	assert.Equal(t, "orga@example.ch", cfg.AdminEmail)
	assert.Equal(t, "Europe/Zurich", cfg.Location().String())
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.ProxyList())
}

func TestParse_InvalidNumber(t *testing.T) {
	setSecrets(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "many")
	_, err := Parse()
	assert.Error(t, err)
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{EventTimezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestParse_RejectsMissingOrWeakSecrets(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")
	_, err := Parse()
	require.Error(t, err)

	t.Setenv("JWT_ACCESS_SECRET", "short")
	t.Setenv("JWT_REFRESH_SECRET", testRefreshSecret)
	_, err = Parse()
	assert.ErrorIs(t, err, ErrWeakSecret)

	t.Setenv("JWT_ACCESS_SECRET", testRefreshSecret)
	_, err = Parse()
	assert.Error(t, err)

	t.Setenv("JWT_ACCESS_SECRET", testAccessSecret)
	_, err = Parse()
	assert.NoError(t, err)
}
