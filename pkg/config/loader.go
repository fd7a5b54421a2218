package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from environment variables using `env` struct tags.
//
// Example:
//
//	type Config struct {
//	    HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
//	    MediaDir string `env:"MEDIA_DIR" envDefault:"./media"`
//	}
//
// Missing variables fall back to envDefault; tags marked required fail
// the load.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
