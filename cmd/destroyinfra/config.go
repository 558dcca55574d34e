package main

import (
	"github.com/kbukum/alexops/internal/config"
	"github.com/kbukum/alexops/internal/storage"
)

// appConfig is the destroy-infra tool configuration. AWS settings all
// have working defaults, so only the shared fields are validated.
type appConfig struct {
	config.ToolConfig `yaml:",inline" mapstructure:",squash"`

	AWS storage.Config `yaml:"aws" mapstructure:"aws"`
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "destroy-infra"
	}
	c.ToolConfig.ApplyDefaults()
	c.AWS.ApplyDefaults()
}

func (c *appConfig) Validate() error {
	return c.ToolConfig.Validate()
}
