package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string   `yml:"env" default:"local"`
	Postgres Postgres `yml:"postgres"`
	Redis    Redis    `yml:"redis"`
	Server   Server   `yml:"server" env-required:"true"`
	Auth     Auth     `yml:"auth"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yml:"host" env-required:"true"`
	Port            string        `env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yml:"max_open_conns" default:"50"`
	MaxIdleConns    int           `yml:"max_idle_conns" default:"10"`
	ConnMaxLifetime time.Duration `yml:"conn_max_lifetime" default:"5m"`
	ConnMaxIdleTime time.Duration `yml:"conn_max_idle_time" default:"1m"`
}

// Redis configures the statistics cache. With Enabled false the service
// falls back to direct queries.
type Redis struct {
	Enabled  bool          `yml:"enabled" default:"false"`
	Addr     string        `yml:"addr" default:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `yml:"db" default:"0"`
	StatsTTL time.Duration `yml:"stats_ttl" default:"1m"`
}

type Server struct {
	Host    string        `yml:"host" default:"localhost"`
	Port    string        `yml:"port" default:"8080"`
	Timeout time.Duration `yml:"timeout" default:"5s"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yml:"token_ttl" default:"24h"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

// MustLoad is Load for the service entrypoint: any config problem is fatal.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
