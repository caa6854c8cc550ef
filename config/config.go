package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all process-wide settings. Values come from environment
// variables with a TILEWIRE_ prefix (TILEWIRE_NATS_URL and so on), falling
// back to the defaults below.
type Config struct {
	NatsURL        string
	WordServiceURL string
	MaxPlayers     int
	Debug          bool
}

func New() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("tilewire")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("nats_url", "nats://127.0.0.1:4222")
	v.SetDefault("word_service_url", "http://localhost:9090")
	v.SetDefault("max_players", 4)
	v.SetDefault("debug", false)

	cfg := &Config{
		NatsURL:        v.GetString("nats_url"),
		WordServiceURL: v.GetString("word_service_url"),
		MaxPlayers:     v.GetInt("max_players"),
		Debug:          v.GetBool("debug"),
	}
	return cfg, nil
}

// DefaultConfig returns a config with all defaults, for tests.
func DefaultConfig() Config {
	return Config{
		NatsURL:        "nats://127.0.0.1:4222",
		WordServiceURL: "http://localhost:9090",
		MaxPlayers:     4,
	}
}
