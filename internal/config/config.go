// Package config loads service configuration from a yaml file, an optional
// .env file, and SHOPFRONT_-prefixed environment variables, in that order of
// increasing priority.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SHOPFRONT_"

type ServerConfig struct {
	Port    int `koanf:"port"`
	Timeout struct {
		Read       time.Duration `koanf:"read"`
		Write      time.Duration `koanf:"write"`
		Idle       time.Duration `koanf:"idle"`
		ReadHeader time.Duration `koanf:"readHeader"`
	} `koanf:"timeout"`
}

type DataConfig struct {
	Dir string `koanf:"dir"`
}

type StaticConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Token   string `koanf:"token"`
}

type SubmitConfig struct {
	LimitPerMin int `koanf:"limitPerMin"`
}

type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Data    DataConfig    `koanf:"data"`
	Static  StaticConfig  `koanf:"static"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
	Submit  SubmitConfig  `koanf:"submit"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "5s",
		"data.dir":                  "data",
		"log.level":                 "info",
		"submit.limitPerMin":        10,
	}
}

// Load reads configuration from configFile (missing file is not an error; the
// defaults and environment still apply).
func Load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading config file %q: %v", configFile, err)
		}
	}

	transform := func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(strings.ToLower(key), strings.ToLower(envPrefix)))
		return strings.ReplaceAll(key, "_", ".")
	}

	if envFile, err := godotenv.Read(".env"); err == nil {
		m := make(map[string]any, len(envFile))
		for key, value := range envFile {
			m[transform(key)] = value
		}
		if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", transform), nil); err != nil {
		log.Printf("WARN: error loading environment: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Timeout.Read <= 0 {
		return fmt.Errorf("invalid server read timeout: %v", c.Server.Timeout.Read)
	}
	if c.Server.Timeout.Write <= 0 {
		return fmt.Errorf("invalid server write timeout: %v", c.Server.Timeout.Write)
	}
	if c.Server.Timeout.Idle <= 0 {
		return fmt.Errorf("invalid server idle timeout: %v", c.Server.Timeout.Idle)
	}
	if c.Server.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("invalid server read header timeout: %v", c.Server.Timeout.ReadHeader)
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must be set")
	}
	if c.Submit.LimitPerMin <= 0 {
		return fmt.Errorf("invalid submit rate limit: %d", c.Submit.LimitPerMin)
	}
	if c.Metrics.Enabled && c.Metrics.Token == "" {
		return fmt.Errorf("metrics.token must be set when metrics are enabled")
	}
	return nil
}

// String dumps the effective configuration for startup logging.
func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.Server.Port))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.Server.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.Server.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.Server.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.Server.Timeout.ReadHeader))

	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  data.dir: %s\n", c.Data.Dir))
	if c.Static.Dir != "" {
		b.WriteString(fmt.Sprintf("  static.dir: %s\n", c.Static.Dir))
	}

	b.WriteString("\n--- Observability ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  metrics.enabled: %t\n", c.Metrics.Enabled))
	b.WriteString(fmt.Sprintf("  metrics.token: %s\n", maskToken(c.Metrics.Token)))

	b.WriteString("\n--- Behavior ---\n")
	b.WriteString(fmt.Sprintf("  submit.limitPerMin: %d\n", c.Submit.LimitPerMin))

	return b.String()
}

func maskToken(tok string) string {
	if tok == "" {
		return "<not configured>"
	}
	return "****"
}
