package config

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults registers default values for every config key.
func SetDefaults() {
	// Gateway
	viper.SetDefault("gateway.port", 8080)
	viper.SetDefault("gateway.host", "127.0.0.1")
	viper.SetDefault("gateway.rate_limit.enabled", true)
	viper.SetDefault("gateway.rate_limit.requests_per_minute", 60)
	viper.SetDefault("gateway.rate_limit.burst", 10)
	viper.SetDefault("gateway.rate_limit.cleanup_interval", 5*time.Minute)

	// OpenAI upstream
	viper.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.timeout", "60s")

	// Engine
	viper.SetDefault("engine.max_tokens", 1024)
	viper.SetDefault("engine.temperature", 0.7)

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.file", "")
}
