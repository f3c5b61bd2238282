package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultJWTSecret is the placeholder secret used when JWT_SECRET is unset
const DefaultJWTSecret = "your-secret-key-change-in-production"

// Config 应用配置
type Config struct {
	Port      string `envconfig:"PORT" default:":8080"`
	DBPath    string `envconfig:"DB_PATH" default:"./data/evjourney/annotations.db"`
	JWTSecret string `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`

	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"32"` // 上传文件大小上限

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev   bool   `envconfig:"LOG_DEV" default:"false"`

	RateLimit          int           `envconfig:"RATE_LIMIT" default:"120"` // requests per minute per client IP
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	GinMode            string        `envconfig:"GIN_MODE" default:"release"`
}

// Load 加载配置
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges envconfig cannot express
func (c *Config) Validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// UsesDefaultSecret reports whether JWT_SECRET was left at its placeholder
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
