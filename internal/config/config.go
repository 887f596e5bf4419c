// Package config resolves runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the program reads from its environment.
// EventName and Passphrase are only defaults: once persisted they are
// managed from the admin settings screen.
type Config struct {
	DataDir    string `env:"DOORLIST_DATA_DIR"`
	EventName  string `env:"DOORLIST_EVENT_NAME" envDefault:"Charity Night"`
	Passphrase string `env:"DOORLIST_PASSPHRASE" envDefault:"checkin"`
}

// Load parses the environment. DataDir defaults to ~/.doorlist.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".doorlist")
	}
	return cfg, nil
}
