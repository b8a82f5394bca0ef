// Package config loads application configuration from environment variables.
//
// Values come from the process environment, optionally seeded from a `.env`
// file, and are mapped onto Config with koanf. Keys are split on their first
// underscore, so APP_PORT becomes app.port and DB_MAX_OPEN_CONNS becomes
// db.max_open_conns.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all runtime configuration values.
type Config struct {
	App      AppConfig      `koanf:"app" validate:"required"`
	DB       DBConfig       `koanf:"db" validate:"required"`
	Redis    RedisConfig    `koanf:"redis"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	Activity ActivityConfig `koanf:"activity"`
}

type AppConfig struct {
	Env             string        `koanf:"env" validate:"required"`  // application environment (local, dev, prod)
	Port            string        `koanf:"port" validate:"required"` // HTTP port to listen on
	LogLevel        string        `koanf:"log_level"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DBConfig describes the MySQL connection and pool.
type DBConfig struct {
	User            string        `koanf:"user" validate:"required"`
	Pass            string        `koanf:"pass"` // empty allowed
	Host            string        `koanf:"host" validate:"required"`
	Port            string        `koanf:"port" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// RedisConfig points at the redis instance backing the activity feed. An
// empty Addr disables the feed.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// RabbitMQConfig points at the broker problem events are published to. An
// empty URL disables publishing and the activity consumer.
type RabbitMQConfig struct {
	URL   string `koanf:"url"`
	Queue string `koanf:"queue" validate:"required"`
}

type ActivityConfig struct {
	Limit int64 `koanf:"limit" validate:"gte=1"` // newest events kept per user
}

// sections lists the env prefixes that belong to this service. Anything else
// in the environment is ignored.
var sections = []string{"APP_", "DB_", "REDIS_", "RABBITMQ_", "ACTIVITY_"}

// Defaults returns the configuration used for every key the environment
// does not set.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Env:             "local",
			Port:            "8000",
			LogLevel:        "info",
			ShutdownTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Port:            "3306",
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 30 * time.Minute,
		},
		RabbitMQ: RabbitMQConfig{Queue: "problem.events"},
		Activity: ActivityConfig{Limit: 50},
	}
}

// Load reads the environment, applies Defaults for missing keys and
// validates the result.
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// envKey maps DB_MAX_OPEN_CONNS to db.max_open_conns. Keys outside the known
// sections map to "" which koanf skips.
func envKey(s string) string {
	for _, p := range sections {
		if strings.HasPrefix(s, p) {
			return strings.Replace(strings.ToLower(s), "_", ".", 1)
		}
	}
	return ""
}
