package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Environment controls how much error detail reaches clients.
	Environment        string   `mapstructure:"environment" validate:"required,oneof=production development"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	// TrustProxyHeaders takes the client IP from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers;
	// otherwise clients can pick their own IP and evade per-IP limits.
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment != "development"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	AccessTokenSecret           string `mapstructure:"access_token_secret" validate:"required,min=32"`
	RefreshTokenSecret          string `mapstructure:"refresh_token_secret" validate:"required,min=32,nefield=AccessTokenSecret"`
	AccessTokenLifetimeMinutes  int    `mapstructure:"access_token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0,lte=43200,gtfield=AccessTokenLifetimeMinutes"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
	CookieSecure                bool   `mapstructure:"cookie_secure"`
}

// RateLimitConfig controls per-IP throttling of the credential endpoints.
// Auth uses the limiter's formatted rate ("20-M" is 20 requests per minute);
// an empty value disables the limiter.
type RateLimitConfig struct {
	Auth string `mapstructure:"auth"`
}

// RedisConfig is optional. When URL is set the rate limiter keeps its
// counters in redis so several instances share them.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}
