// internal/config/config.go
package config

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the process configuration, loaded once at startup and immutable
// thereafter. All values come from the environment with the SKETCHCHAIN_
// prefix (a .env file is honored via godotenv autoload in main).
type Config struct {
	// Port is the TCP port the HTTP/WebSocket server listens on.
	Port int
	// AllowedOrigins are the origins permitted to connect, from a
	// comma-separated SKETCHCHAIN_ALLOWED_ORIGINS. "*" allows any origin.
	AllowedOrigins []string
	// LogLevel is a logrus level name (trace..panic).
	LogLevel string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("sketchchain")
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("log_level", "info")

	origins := strings.Split(v.GetString("allowed_origins"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:           v.GetInt("port"),
		AllowedOrigins: origins,
		LogLevel:       v.GetString("log_level"),
	}
}

// LogrusLevel parses LogLevel, falling back to info on garbage input.
func (c *Config) LogrusLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
