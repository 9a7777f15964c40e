// Package config loads typed configuration structs from the process
// environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every component of the
// storefront declares its own Config struct with `env` tags; the entrypoint
// loads each of them once:
//
//	var tokens accesstoken.Config
//	config.MustLoad(&tokens)
//
// Parsed values are cached per struct type for the lifetime of the process,
// so repeated Load calls for the same type are cheap and always observe the
// same values. Tests use ResetCache or ForceReload after changing the
// environment.
//
// The default ".env" file in the working directory is read at most once, on
// the first Load. Missing files are ignored there; LoadEnv with explicit
// paths reports them.
package config
