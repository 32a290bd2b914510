package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/atlas_derslik/pkg/tokens"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DevJWTSecret is only ever used outside production.
	DevJWTSecret   = "atlas-derslik-insecure-dev-secret"
	DevDatabaseURL = "sqlite://atlas_derslik.db"
)

var (
	ErrMissingSecret   = errors.New("JWT_SECRET is required in production")
	ErrMissingDatabase = errors.New("DATABASE_URL is required in production")
	ErrInsecureSecret  = errors.New("JWT_SECRET must not be the development default in production")
)

type Config struct {
	Env         string
	ServerPort  int
	DatabaseURL string

	JWTSecret    []byte
	TokenTTL     time.Duration
	BcryptCost   int
	UsingDevKeys bool

	LogLevel string

	KafkaBrokers []string
	KafkaTopic   string

	SeedDemo    bool
	CORSOrigins []string
}

func (c Config) Production() bool { return c.Env == EnvProduction }

func (c Config) Addr() string { return ":" + strconv.Itoa(c.ServerPort) }

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("notice: .env not loaded: %v", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	env := strings.ToLower(envDefault(getenv, "APP_ENV", EnvDevelopment))

	ttl, err := envDuration(getenv, "TOKEN_TTL", tokens.DefaultTTL)
	if err != nil {
		return Config{}, err
	}

	port, err := envInt(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return Config{}, err
	}
	cost, err := envInt(getenv, "BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:          env,
		ServerPort:   port,
		DatabaseURL:  getenv("DATABASE_URL"),
		JWTSecret:    []byte(getenv("JWT_SECRET")),
		TokenTTL:     ttl,
		BcryptCost:   cost,
		LogLevel:     envDefault(getenv, "LOG_LEVEL", "info"),
		KafkaBrokers: CSV(getenv("KAFKA_BROKERS")),
		KafkaTopic:   envDefault(getenv, "KAFKA_TOPIC", "account_events"),
		SeedDemo:     envBool(getenv, "SEED_DEMO"),
		CORSOrigins:  CSV(envDefault(getenv, "CORS_ORIGINS", "*")),
	}

	if cfg.Production() {
		if len(cfg.JWTSecret) == 0 {
			return Config{}, ErrMissingSecret
		}
		if string(cfg.JWTSecret) == DevJWTSecret {
			return Config{}, ErrInsecureSecret
		}
		if cfg.DatabaseURL == "" {
			return Config{}, ErrMissingDatabase
		}
		return cfg, nil
	}

	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = []byte(DevJWTSecret)
		cfg.UsingDevKeys = true
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DevDatabaseURL
	}
	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(getenv func(string) string, key string) bool {
	b, _ := strconv.ParseBool(getenv(key))
	return b
}

func envDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
