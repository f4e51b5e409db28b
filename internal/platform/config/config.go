package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "WEATHERBOT_"

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Log     LogConfig     `koanf:"log"`
	Slack   SlackConfig   `koanf:"slack"`
	Weather WeatherConfig `koanf:"weather"`
	Geocode GeocodeConfig `koanf:"geocode"`
	Charts  ChartsConfig  `koanf:"charts"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=0,max=65535"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json text"`
}

// SlackConfig holds the single shared signing secret and bot identity.
type SlackConfig struct {
	SigningSecret string        `koanf:"signingsecret" validate:"required"`
	BotUserID     string        `koanf:"botuserid"`
	BotToken      string        `koanf:"bottoken"`
	Command       string        `koanf:"command" validate:"required,startswith=/"`
	MaxSkew       time.Duration `koanf:"maxskew" validate:"min=0"`
	APIBaseURL    string        `koanf:"apibaseurl" validate:"omitempty,url"`
}

type WeatherConfig struct {
	BaseURL string        `koanf:"baseurl" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

type GeocodeConfig struct {
	Provider string        `koanf:"provider" validate:"oneof=openweather google"`
	APIKey   string        `koanf:"apikey"`
	BaseURL  string        `koanf:"baseurl" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

type ChartsConfig struct {
	BaseURL string `koanf:"baseurl" validate:"required,url"`
	Width   int    `koanf:"width" validate:"gt=0"`
	Height  int    `koanf:"height" validate:"gt=0"`
}

// legacyEnv maps the conventional unprefixed Slack app variable names onto
// config keys. They apply only when the prefixed variable is unset.
var legacyEnv = map[string]string{
	"SLACK_SIGNING_SECRET": "slack.signingsecret",
	"SLACK_BOT_USER_ID":    "slack.botuserid",
	"SLACK_BOT_TOKEN":      "slack.bottoken",
	"OPENWEATHER_API_KEY":  "geocode.apikey",
}

var validate = validator.New()

func Load(configPaths ...string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	k := koanf.New(".")

	// Defaults
	_ = k.Load(confmap.Provider(map[string]any{
		"server.port":      8080,
		"server.host":      "0.0.0.0",
		"log.level":        "info",
		"log.format":       "json",
		"slack.command":    "/weather",
		"slack.maxskew":    "5m",
		"weather.baseurl":  "https://api.open-meteo.com",
		"weather.timeout":  "10s",
		"geocode.provider": "openweather",
		"geocode.baseurl":  "https://api.openweathermap.org",
		"geocode.timeout":  "10s",
		"charts.baseurl":   "https://quickchart.io",
		"charts.width":     800,
		"charts.height":    300,
	}, "."), nil)

	// YAML file (optional)
	for _, path := range configPaths {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			// Config file is optional, skip if not found
			continue
		}
	}

	legacy := map[string]any{}
	for name, key := range legacyEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			legacy[key] = v
		}
	}
	if len(legacy) > 0 {
		_ = k.Load(confmap.Provider(legacy, "."), nil)
	}

	// Environment variables override everything
	// WEATHERBOT_SLACK_SIGNINGSECRET -> slack.signingsecret
	_ = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"_", ".",
		)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Geocode.Provider == "google" && strings.TrimSpace(c.Geocode.APIKey) == "" {
		return fmt.Errorf("invalid config: geocode.apikey is required for the google provider")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
