package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var ErrMisconfigured = errors.New("config invalid")

type Config struct {
	Port        string
	Env         string
	CORSOrigins []string
	JWT         JWTConfig
	BcryptCost  int
	Postgres    PostgresConfig
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the environment and validates it once at
// startup. Missing or equal JWT secrets are a hard error: tokens signed with a
// known fallback value are worthless, so the process refuses to start instead.
func Load() (Config, error) {
	accessSecret := os.Getenv("JWT_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if accessSecret == "" {
		return Config{}, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	if refreshSecret == "" {
		return Config{}, fmt.Errorf("%w: JWT_REFRESH_SECRET is required", ErrMisconfigured)
	}
	if accessSecret == refreshSecret {
		return Config{}, fmt.Errorf("%w: JWT_SECRET and JWT_REFRESH_SECRET must differ", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(getenv("JWT_EXPIRES_IN", "15m"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JWT_EXPIRES_IN", ErrMisconfigured)
	}
	refreshTTL, err := time.ParseDuration(getenv("JWT_REFRESH_EXPIRES_IN", "168h"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JWT_REFRESH_EXPIRES_IN", ErrMisconfigured)
	}

	cost, err := strconv.Atoi(getenv("BCRYPT_SALT_ROUNDS", "10"))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("%w: invalid BCRYPT_SALT_ROUNDS", ErrMisconfigured)
	}

	return Config{
		Port:        getenv("PORT", "3000"),
		Env:         getenv("APP_ENV", "development"),
		CORSOrigins: splitOrigins(os.Getenv("CORS_ORIGIN")),
		JWT: JWTConfig{
			AccessSecret:  accessSecret,
			RefreshSecret: refreshSecret,
			AccessTTL:     accessTTL,
			RefreshTTL:    refreshTTL,
		},
		BcryptCost: cost,
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}, nil
}

func splitOrigins(value string) []string {
	if strings.TrimSpace(value) == "" {
		return []string{"http://localhost:5173"}
	}
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
