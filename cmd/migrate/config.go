package main

import (
	"fmt"

	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/database"
)

// appConfig is the migrate tool configuration.
type appConfig struct {
	config.ToolConfig `yaml:",inline" mapstructure:",squash"`

	Database database.Config `yaml:"database" mapstructure:"database"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "migrate"
	}
	c.ToolConfig.ApplyDefaults()
	c.Database.ApplyDefaults()
}

func (c *appConfig) Validate() error {
	if err := c.ToolConfig.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("config.database: %w", err)
	}
	return nil
}
