// Package config loads environment-backed configuration for build
// configuration passes.
//
// Values come from the process environment, with an optional .env file
// loaded once for local development:
//
//	var cfg config.Build
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// The Build struct covers the whole surface: message directory, default
// locale override, locale allow-list, and the bundler build target.
package config
