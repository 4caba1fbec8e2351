package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Kassa"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8080/api/v1"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	}

	Session struct {
		// Path overrides the default per-user session file location.
		Path string `envconfig:"SESSION_PATH" default:""`
	}

	DevServer struct {
		Port      int           `envconfig:"DEVSERVER_PORT" default:"8080"`
		JWTSecret string        `envconfig:"DEVSERVER_JWT_SECRET" default:"dev-only-secret"`
		TokenTTL  time.Duration `envconfig:"DEVSERVER_TOKEN_TTL" default:"12h"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
