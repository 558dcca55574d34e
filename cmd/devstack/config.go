package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kbukum/alexops/internal/config"
)

// serviceConfig describes one managed service.
type serviceConfig struct {
	Name      string   `yaml:"name" mapstructure:"name"`
	Binary    string   `yaml:"binary" mapstructure:"binary"`
	Args      []string `yaml:"args" mapstructure:"args"`
	Dir       string   `yaml:"dir" mapstructure:"dir"`
	HealthURL string   `yaml:"health_url" mapstructure:"health_url"`
	URL       string   `yaml:"url" mapstructure:"url"`
}

// appConfig is the devstack tool configuration. With no config file it
// runs the platform's backend and frontend.
type appConfig struct {
	config.ToolConfig `yaml:",inline" mapstructure:",squash"`

	Prerequisites []string        `yaml:"prerequisites" mapstructure:"prerequisites"`
	EnvFiles      []string        `yaml:"env_files" mapstructure:"env_files"`
	GracePeriod   string          `yaml:"grace_period" mapstructure:"grace_period"`
	HealthTimeout string          `yaml:"health_timeout" mapstructure:"health_timeout"`
	Services      []serviceConfig `yaml:"services" mapstructure:"services"`
}

func defaultServices() []serviceConfig {
	return []serviceConfig{
		{
			Name:      "backend",
			Binary:    "uv",
			Args:      []string{"run", "main.py"},
			Dir:       filepath.Join("backend", "api"),
			HealthURL: "http://localhost:8000/health",
			URL:       "http://localhost:8000",
		},
		{
			Name:      "frontend",
			Binary:    "npm",
			Args:      []string{"run", "dev"},
			Dir:       "frontend",
			HealthURL: "http://localhost:3000",
			URL:       "http://localhost:3000",
		},
	}
}

func (c *appConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "devstack"
	}
	c.ToolConfig.ApplyDefaults()

	if c.Prerequisites == nil {
		c.Prerequisites = []string{"node", "npm", "uv"}
	}
	if c.EnvFiles == nil {
		c.EnvFiles = []string{".env", filepath.Join("frontend", ".env.local")}
	}
	if c.GracePeriod == "" {
		c.GracePeriod = "5s"
	}
	if c.HealthTimeout == "" {
		c.HealthTimeout = "30s"
	}
	if len(c.Services) == 0 {
		c.Services = defaultServices()
	}
}

func (c *appConfig) Validate() error {
	if err := c.ToolConfig.Validate(); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.GracePeriod); err != nil {
		return fmt.Errorf("config.grace_period: %w", err)
	}
	if _, err := time.ParseDuration(c.HealthTimeout); err != nil {
		return fmt.Errorf("config.health_timeout: %w", err)
	}
	for i, svc := range c.Services {
		if svc.Name == "" {
			return fmt.Errorf("config.services[%d].name is required", i)
		}
		if svc.Binary == "" {
			return fmt.Errorf("config.services[%d] (%s): binary is required", i, svc.Name)
		}
	}
	return nil
}
