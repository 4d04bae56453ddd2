package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Version string        `mapstructure:"version" yaml:"version"`
	Gateway GatewayConfig `mapstructure:"gateway" yaml:"gateway"`
	OpenAI  OpenAIConfig  `mapstructure:"openai" yaml:"openai"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// GatewayConfig holds HTTP gateway settings.
type GatewayConfig struct {
	Port      int             `mapstructure:"port" yaml:"port"`
	Host      string          `mapstructure:"host" yaml:"host"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// RateLimitConfig holds per-client request throttling settings.
type RateLimitConfig struct {
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	Burst             int           `mapstructure:"burst" yaml:"burst"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// OpenAIConfig holds upstream completion API settings.
type OpenAIConfig struct {
	APIKey   string `mapstructure:"api_key" yaml:"api_key"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string `mapstructure:"model" yaml:"model"`
	Timeout  string `mapstructure:"timeout" yaml:"timeout"`
}

// GetTimeout parses the Timeout field, defaulting to 60 seconds.
func (c *OpenAIConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// EngineConfig holds chat turn processing settings.
type EngineConfig struct {
	MaxTokens   int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

var (
	globalConfig *Config
	configPath   string
	mu           sync.RWMutex
)

// Load reads configuration with precedence ENV > file > defaults.
func Load(path string) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	SetDefaults()

	viper.SetEnvPrefix("NUDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		expandedPath, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		configPath = expandedPath

		viper.SetConfigFile(expandedPath)
		if err := viper.ReadInConfig(); err != nil {
			// A missing file falls through to defaults; a malformed one is fatal.
			if _, ok := err.(viper.ConfigParseError); ok {
				return nil, err
			}
			if !os.IsNotExist(err) {
				var pathErr *os.PathError
				if !errors.As(err, &pathErr) {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// GetConfig returns the currently loaded configuration.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// GetString returns a string config value by key.
func GetString(key string) string {
	return viper.GetString(key)
}

// Set updates a config value and persists it when a file path is known.
func Set(key string, value any) error {
	mu.Lock()
	defer mu.Unlock()

	viper.Set(key, value)
	if configPath != "" {
		return save()
	}
	return nil
}

// Save writes the current configuration to the loaded file path.
func Save() error {
	mu.Lock()
	defer mu.Unlock()
	return save()
}

// save assumes the caller holds mu.
func save() error {
	if configPath == "" {
		return errors.New("config path not set")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return err
	}

	// 0600: the file may contain the upstream API key.
	return os.WriteFile(configPath, data, 0600)
}

// SaveTo serializes cfg as YAML to an arbitrary path.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Reset clears all loaded state. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	configPath = ""
	viper.Reset()
}
