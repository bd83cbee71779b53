package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. REGISTRY_SERVER_PORT.
const EnvPrefix = "REGISTRY"

// legacyDatabaseURLEnv is the variable the original deployment used for the
// Neon connection string. It is honoured when REGISTRY_DATABASE_URL is unset.
const legacyDatabaseURLEnv = "NEON_CONNECTION_URI"

// Load reads configuration from a .env file (if present), an optional config
// file and environment variables, in increasing order of precedence.
// configFile may be empty, in which case ./config.yaml is used when it exists.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// keys without defaults explicitly.
	for _, key := range []string{"database.url", "auth.jwt_secret", "cache.redis_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	if v.GetString("database.url") == "" {
		if legacy := os.Getenv(legacyDatabaseURLEnv); legacy != "" {
			v.Set("database.url", legacy)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("rate_limit.auth_rps", 5.0)
	v.SetDefault("rate_limit.auth_burst", 10)
	v.SetDefault("cache.ttl_seconds", 60)
}
