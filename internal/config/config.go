package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported values for USERS_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port        int
	UsersFile   string
	Backend     string
	DBPath      string
	DatabaseURL string
	TrustProxy  bool
	RateLimit   float64
	RateBurst   int
}

func Default() Config {
	return Config{
		Port:      3000,
		UsersFile: "db/user.json",
		Backend:   BackendFile,
		DBPath:    "roster.db",
		RateLimit: 100,
		RateBurst: 200,
	}
}

// Load reads configuration from the environment on top of Default.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		Port:        v.GetInt("port"),
		UsersFile:   v.GetString("users_file"),
		Backend:     strings.ToLower(strings.TrimSpace(v.GetString("users_backend"))),
		DBPath:      v.GetString("db_path"),
		DatabaseURL: v.GetString("database_url"),
		TrustProxy:  v.GetBool("trust_proxy"),
		RateLimit:   v.GetFloat64("api_rate_limit"),
		RateBurst:   v.GetInt("api_rate_burst"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("port", d.Port)
	v.SetDefault("users_file", d.UsersFile)
	v.SetDefault("users_backend", d.Backend)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("trust_proxy", d.TrustProxy)
	v.SetDefault("api_rate_limit", d.RateLimit)
	v.SetDefault("api_rate_burst", d.RateBurst)
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	switch c.Backend {
	case BackendFile:
		if c.UsersFile == "" {
			return errors.New("USERS_FILE must not be empty")
		}
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH must not be empty")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown USERS_BACKEND %q", c.Backend)
	}

	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("API_RATE_LIMIT and API_RATE_BURST must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
