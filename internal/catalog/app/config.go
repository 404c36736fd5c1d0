package app

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from the environment. Everything has a workable default
// except the signing secret, which falls back to an ephemeral random one.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	DatabaseFile string `env:"CATALOG_DATABASE_FILE" envDefault:"catalog.db"`

	JWTSecret    string        `env:"CATALOG_JWT_SECRET"`
	JWTAlgorithm string        `env:"CATALOG_JWT_ALGORITHM" envDefault:"HS256"`
	AccessTTL    time.Duration `env:"CATALOG_ACCESS_TTL" envDefault:"15m"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
