// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags. Load parses a
// struct once per type and serves later calls from a cache, so packages can
// ask for their own config without threading it through constructors:
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// A .env file in the working directory is loaded on first use; variables
// already present in the environment take precedence.
package config
