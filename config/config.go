// Package config loads the service configuration.
//
// Values are layered, later sources winning: built-in defaults, the YAML file,
// the .env file and finally process environment variables. Environment keys
// use the CATALOG_ prefix with underscores as separators, so
// CATALOG_MONGO_URI sets mongo.uri.
package config

import (
	"errors"
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

const envPrefix = "CATALOG_"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Server ServerConfig `koanf:"server"`
	Mongo  MongoConfig  `koanf:"mongo"`
	Store  StoreConfig  `koanf:"store"`
	Auth   AuthConfig   `koanf:"auth"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Port    int    `koanf:"port" validate:"gt=0,lte=65535"`
	Mode    string `koanf:"mode" validate:"oneof=debug release test"`
	Timeout struct {
		Read     time.Duration `koanf:"read" validate:"gt=0"`
		Write    time.Duration `koanf:"write" validate:"gt=0"`
		Idle     time.Duration `koanf:"idle" validate:"gt=0"`
		Shutdown time.Duration `koanf:"shutdown" validate:"gt=0"`
	} `koanf:"timeout"`
}

type MongoConfig struct {
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

type StoreConfig struct {
	Driver string `koanf:"driver" validate:"oneof=mongo memory"`
}

// AuthConfig guards the mutating routes with HS256 bearer tokens when enabled.
type AuthConfig struct {
	Enabled bool   `koanf:"enabled"`
	Secret  string `koanf:"secret" validate:"required_if=Enabled true"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Pretty bool   `koanf:"pretty"`
}

var defaults = map[string]any{
	"server.port":             8080,
	"server.mode":             "release",
	"server.timeout.read":     "10s",
	"server.timeout.write":    "10s",
	"server.timeout.idle":     "60s",
	"server.timeout.shutdown": "15s",
	"mongo.uri":               "mongodb://localhost:27017",
	"mongo.database":          "catalog",
	"mongo.timeout":           "5s",
	"store.driver":            StoreMongo,
	"auth.enabled":            false,
	"log.level":               "info",
	"log.pretty":              false,
}

// Load reads configFile and envFile, both optional, then the environment.
func Load(configFile, envFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading config file %q: %w", configFile, err)
	}

	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if strings.HasPrefix(key, envPrefix) {
				envMap[envKey(key)] = value
			}
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", envFile, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envKey maps CATALOG_SERVER_TIMEOUT_READ to server.timeout.read.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Store.Driver == StoreMongo && (c.Mongo.URI == "" || c.Mongo.Database == "") {
		return fmt.Errorf("mongo.uri and mongo.database are required for the %s store", StoreMongo)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.Server.Port))
	b.WriteString(fmt.Sprintf("  server.mode: %s\n", c.Server.Mode))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.Server.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.Server.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.Server.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.shutdown: %v\n", c.Server.Timeout.Shutdown))

	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  store.driver: %s\n", c.Store.Driver))
	b.WriteString(fmt.Sprintf("  mongo.uri: %s\n", maskURI(c.Mongo.URI)))
	b.WriteString(fmt.Sprintf("  mongo.database: %s\n", c.Mongo.Database))
	b.WriteString(fmt.Sprintf("  mongo.timeout: %v\n", c.Mongo.Timeout))

	b.WriteString("\n--- Auth & Logging ---\n")
	b.WriteString(fmt.Sprintf("  auth.enabled: %t\n", c.Auth.Enabled))
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  log.pretty: %t\n", c.Log.Pretty))

	return b.String()
}

// maskURI hides the credentials part of a connection string.
func maskURI(uri string) string {
	if uri == "" {
		return "<not configured>"
	}
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	scheme := ""
	if i := strings.Index(uri, "://"); i >= 0 && i < at {
		scheme = uri[:i+3]
	}
	return scheme + "****" + uri[at:]
}
