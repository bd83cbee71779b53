package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains the connection string and pool sizing.
type DatabaseConfig struct {
	URL                    string `mapstructure:"url"                        validate:"required,url"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"             validate:"gte=1"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"             validate:"gte=0"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"  validate:"gte=0"`
}

// AuthConfig contains token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig bounds how often a single client may hit /auth routes.
type RateLimitConfig struct {
	AuthRPS   float64 `mapstructure:"auth_rps"   validate:"gte=0"`
	AuthBurst int     `mapstructure:"auth_burst" validate:"gte=0"`
}

// CacheConfig configures the optional Redis listing cache. An empty
// RedisURL disables caching.
type CacheConfig struct {
	RedisURL   string `mapstructure:"redis_url"   validate:"omitempty,url"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}
