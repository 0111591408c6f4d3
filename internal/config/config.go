// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type AIConfig struct {
	Provider        string  `yaml:"provider"` // openai | gemini | none
	OpenAIKey       string  `yaml:"openai_key"`
	OpenAIBaseURL   string  `yaml:"openai_base_url"`
	GeminiKey       string  `yaml:"gemini_key"`
	DefaultModel    string  `yaml:"default_model"`
	ConcurrentLimit int     `yaml:"concurrent_limit"` // max concurrent AI calls
	RequestsPerSec  float64 `yaml:"requests_per_sec"`
}

type ReportsConfig struct {
	SchedulerInterval time.Duration `yaml:"scheduler_interval"`
	Workers           int           `yaml:"workers"`
	QueueSize         int           `yaml:"queue_size"`
	RateLimitPerHour  int           `yaml:"rate_limit_per_hour"`
}

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
	Reports  ReportsConfig  `yaml:"reports"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path after loading a .env file from the
// working directory, if any. Secrets in the environment win over the file.
func LoadConfig(path string, dev bool) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	return cfg, nil
}

// Parse decodes raw YAML, applies env overrides and defaults, then validates.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&c.Database.URL, "DATABASE_URL")
	override(&c.Redis.URL, "REDIS_URL")
	override(&c.Auth.JWTSecret, "AUTH_JWT_SECRET")
	override(&c.AI.OpenAIKey, "OPENAI_API_KEY")
	override(&c.AI.GeminiKey, "GEMINI_API_KEY")
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.RequestTimeout <= 0 {
		c.HTTP.RequestTimeout = 15 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Database.MaxConns <= 0 {
		c.Database.MaxConns = 10
	}
	c.Redis.TTL = normalizeTTL(c.Redis.TTL)
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = "job-tracker-api"
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}

	c.AI.Provider = strings.ToLower(strings.TrimSpace(c.AI.Provider))
	if c.AI.Provider == "" {
		switch {
		case c.AI.OpenAIKey != "":
			c.AI.Provider = "openai"
		case c.AI.GeminiKey != "":
			c.AI.Provider = "gemini"
		default:
			c.AI.Provider = "none"
		}
	}
	if c.AI.DefaultModel == "" {
		if c.AI.Provider == "gemini" {
			c.AI.DefaultModel = "gemini-2.0-flash"
		} else {
			c.AI.DefaultModel = "gpt-4o-mini"
		}
	}
	if c.AI.ConcurrentLimit <= 0 {
		c.AI.ConcurrentLimit = 4
	}
	if c.AI.RequestsPerSec <= 0 {
		c.AI.RequestsPerSec = 2
	}

	if c.Reports.SchedulerInterval <= 0 {
		c.Reports.SchedulerInterval = time.Hour
	}
	if c.Reports.Workers <= 0 {
		c.Reports.Workers = 4
	}
	if c.Reports.QueueSize <= 0 {
		c.Reports.QueueSize = 64
	}
	if c.Reports.RateLimitPerHour <= 0 {
		c.Reports.RateLimitPerHour = 10
	}
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Redis.URL == "" {
		return errors.New("redis.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	switch c.AI.Provider {
	case "openai", "gemini", "none":
	default:
		return fmt.Errorf("ai.provider %q is not supported", c.AI.Provider)
	}
	return nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
