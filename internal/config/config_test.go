package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_DevelopmentDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []byte(DevJWTSecret), cfg.JWTSecret)
	assert.True(t, cfg.UsingDevKeys)
	assert.Equal(t, DevDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, "account_events", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.SeedDemo)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := FromEnv(envMap(map[string]string{
		"SERVER_PORT":   "9090",
		"JWT_SECRET":    "s3cret",
		"TOKEN_TTL":     "2h",
		"BCRYPT_COST":   "12",
		"KAFKA_BROKERS": "k1:9092, k2:9092,",
		"SEED_DEMO":     "true",
		"DATABASE_URL":  "postgres://u:p@db:5432/atlas",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.False(t, cfg.UsingDevKeys)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, "postgres://u:p@db:5432/atlas", cfg.DatabaseURL)
}

func TestFromEnv_BadTTL(t *testing.T) {
	t.Parallel()

	_, err := FromEnv(envMap(map[string]string{"TOKEN_TTL": "soon"}))
	require.Error(t, err)

	_, err = FromEnv(envMap(map[string]string{"TOKEN_TTL": "-1h"}))
	require.Error(t, err)
}

func TestFromEnv_BadInt(t *testing.T) {
	t.Parallel()

	_, err := FromEnv(envMap(map[string]string{"SERVER_PORT": "eighty"}))
	require.ErrorContains(t, err, "SERVER_PORT")

	_, err = FromEnv(envMap(map[string]string{"BCRYPT_COST": "high"}))
	require.ErrorContains(t, err, "BCRYPT_COST")
}

func TestFromEnv_Production(t *testing.T) {
	t.Parallel()

	_, err := FromEnv(envMap(map[string]string{
		"APP_ENV":      "production",
		"DATABASE_URL": "postgres://db",
	}))
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = FromEnv(envMap(map[string]string{
		"APP_ENV":      "production",
		"JWT_SECRET":   DevJWTSecret,
		"DATABASE_URL": "postgres://db",
	}))
	assert.ErrorIs(t, err, ErrInsecureSecret)

	_, err = FromEnv(envMap(map[string]string{
		"APP_ENV":    "production",
		"JWT_SECRET": "prod-secret",
	}))
	assert.ErrorIs(t, err, ErrMissingDatabase)

	cfg, err := FromEnv(envMap(map[string]string{
		"APP_ENV":      "Production",
		"JWT_SECRET":   "prod-secret",
		"DATABASE_URL": "postgres://db",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.False(t, cfg.UsingDevKeys)
}

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV(" a ,, b "))
}
