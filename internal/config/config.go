package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendTemplate = "template"
	BackendGemini   = "gemini"

	InflightMemory = "memory"
	InflightRedis  = "redis"
)

type Config struct {
	Port     string         `mapstructure:"port"`
	Log      LogConfig      `mapstructure:"log"`
	Profiler ProfilerConfig `mapstructure:"profiler"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Inflight InflightConfig `mapstructure:"inflight"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ProfilerConfig struct {
	Backend string        `mapstructure:"backend"`
	Delay   time.Duration `mapstructure:"delay"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type InflightConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads .env (if present), an optional config.yaml and the process
// environment. Environment variables use the upper-cased key with "." as
// "_", e.g. PROFILER_DELAY or GEMINI_API_KEY.
func Load() (*Config, error) {
	loadEnvFile()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Profiler.Backend = strings.ToLower(strings.TrimSpace(cfg.Profiler.Backend))
	cfg.Inflight.Backend = strings.ToLower(strings.TrimSpace(cfg.Inflight.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("profiler.backend", BackendTemplate)
	v.SetDefault("profiler.delay", "2s")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash-lite")
	v.SetDefault("inflight.backend", InflightMemory)
	v.SetDefault("inflight.ttl", "30s")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

func (c *Config) Validate() error {
	switch c.Profiler.Backend {
	case BackendTemplate:
	case BackendGemini:
		if c.Gemini.APIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini backend")
		}
	default:
		return fmt.Errorf("unknown profiler backend %q", c.Profiler.Backend)
	}

	switch c.Inflight.Backend {
	case InflightMemory:
	case InflightRedis:
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR is required for the redis in-flight backend")
		}
	default:
		return fmt.Errorf("unknown inflight backend %q", c.Inflight.Backend)
	}

	if c.Profiler.Delay < 0 {
		return fmt.Errorf("profiler delay must not be negative, got %s", c.Profiler.Delay)
	}
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	return nil
}

// loadEnvFile loads the first .env found walking up from the working
// directory to the module root.
func loadEnvFile() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
