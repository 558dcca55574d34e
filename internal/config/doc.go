// Package config provides configuration loading and validation for the
// alexops command-line tools.
//
// It uses Viper to load configuration from an optional config.yml, layers a
// .env file on top via godotenv, and finally applies process environment
// variables. Environment variables bind automatically to nested keys, so
// DATABASE_URL populates the database.url key without explicit binding code.
//
// # Usage
//
//	var cfg reset.Config
//	if err := config.Load("resetdb", &cfg); err != nil { ... }
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil { ... }
package config
