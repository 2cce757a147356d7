package cms

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from environment variables.
// Every value has a working default so a bare `web3live serve` comes up on
// a fresh checkout.
type Config struct {
	AdminUsername string `default:"admin" envconfig:"admin_username"`
	AdminPassword string `default:"1234" envconfig:"admin_password"`
	// AdminToken is the fixed bearer token issued by login and required on
	// every mutating endpoint. Rotate it by redeploying with a new value.
	AdminToken string `default:"web3live" envconfig:"admin_token"`

	Port int `default:"8080" envconfig:"port"`

	DatabasePath string `default:"db.sqlite3" envconfig:"database_path"`
	UploadDir    string `default:"uploads" envconfig:"upload_dir"`
	SiteDir      string `default:"site" envconfig:"site_dir"`
	ConfigPath   string `default:"config.json" envconfig:"config_path"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
