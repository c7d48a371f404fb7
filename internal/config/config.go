package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	DBPath          string        `env:"DB_PATH" envDefault:"./data/vestra.db"`
	CORSOrigin      string        `env:"CORS_ORIGIN" envDefault:"*"`
	QuoteTTL        time.Duration `env:"QUOTE_TTL" envDefault:"10s"`
	HistoryTTL      time.Duration `env:"HISTORY_TTL" envDefault:"100s"`
	RetryDelay      time.Duration `env:"PROVIDER_RETRY_DELAY" envDefault:"1s"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"1m"`
	RefreshEnabled  bool          `env:"REFRESH_ENABLED" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
