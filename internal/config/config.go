package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Routing RoutingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RoutingConfig holds routing engine settings. The defaults reproduce the
// standard triage rules; overriding them changes queue assignment for every
// document processed by this instance.
type RoutingConfig struct {
	FastTrackThreshold float64  `mapstructure:"fast_track_threshold"`
	FraudKeywords      []string `mapstructure:"fraud_keywords"`
}

// Load reads configuration from environment variables with the FNOL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FNOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Routing defaults
	v.SetDefault("routing.fast_track_threshold", 25000)
	v.SetDefault("routing.fraud_keywords", "fraud,staged,inconsistent")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "FNOL_SERVER_PORT",
		"server.read_timeout":          "FNOL_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "FNOL_SERVER_WRITE_TIMEOUT",
		"server.environment":           "FNOL_SERVER_ENVIRONMENT",
		"log.level":                    "FNOL_LOG_LEVEL",
		"log.format":                   "FNOL_LOG_FORMAT",
		"cors.allowed_origins":         "FNOL_CORS_ALLOWED_ORIGINS",
		"routing.fast_track_threshold": "FNOL_ROUTING_FAST_TRACK_THRESHOLD",
		"routing.fraud_keywords":       "FNOL_ROUTING_FRAUD_KEYWORDS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}
	cfg.Server = ServerConfig{
		Port:         v.GetString("server.port"),
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Routing = RoutingConfig{
		FastTrackThreshold: v.GetFloat64("routing.fast_track_threshold"),
		FraudKeywords:      splitCSV(v.GetString("routing.fraud_keywords")),
	}

	return cfg, nil
}

// splitCSV parses a comma-separated string into trimmed non-empty values.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
