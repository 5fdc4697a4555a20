// Package config loads typed configuration from environment variables.
//
// Structs describe their variables with caarlos0/env tags; dotenv files are
// read with joho/godotenv. Every configuration type is parsed once and
// cached, so packages can call Load for the same type independently.
//
//	var cfg correlate.Config // CORRELATION_* variables
//	config.MustLoad(&cfg)
//
// LoadEnv reads explicit dotenv files (later files override earlier ones).
// Reload and ResetCache exist for tests that change the environment.
package config
