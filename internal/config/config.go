package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config carries the runtime settings for the givlocal server. Every
// field can be set from the environment; flags override.
type Config struct {
	DataDir           string `envconfig:"GIVLOCAL_DATA_DIR"`
	Listen            string `envconfig:"GIVLOCAL_LISTEN"              default:":3000"`
	DisableRoleChecks bool   `envconfig:"GIVLOCAL_DISABLE_ROLE_CHECKS" default:"false"`
	Debug             bool   `envconfig:"GIVLOCAL_DEBUG"               default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("givlocal", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
