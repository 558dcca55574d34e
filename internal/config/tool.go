package config

import (
	"fmt"

	"github.com/kbukum/alexops/internal/logger"
)

// ToolConfig contains the configuration fields every alexops tool shares.
// Tools extend it by embedding it in their own config structs.
//
// Example:
//
//	type Config struct {
//	    config.ToolConfig `yaml:",inline" mapstructure:",squash"`
//	    Database database.Config `yaml:"database" mapstructure:"database"`
//	}
type ToolConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetToolConfig returns the embedded ToolConfig. The method is promoted
// when embedded, so every tool config satisfies the same interface.
func (c *ToolConfig) GetToolConfig() *ToolConfig {
	return c
}

// ApplyDefaults applies default values to the shared configuration.
// Embedding structs override this and call c.ToolConfig.ApplyDefaults() first.
func (c *ToolConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the shared configuration fields.
// Embedding structs override this and call c.ToolConfig.Validate() first.
func (c *ToolConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}
