package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// Load parses environment variables into the configuration struct based on
// its `env` field tags. A .env file in the working directory is loaded once,
// if present, before the first parse.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is fine; the environment may be set by the host.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Target identifies which bundler output the configuration describes.
type Target string

const (
	// TargetBrowser builds ship locale payloads as lazily-fetched chunks.
	TargetBrowser Target = "browser"

	// TargetServer builds keep locale payloads resident in the bundle.
	TargetServer Target = "server"
)

// Browser reports whether the target defers locale payloads to lazy chunks.
func (t Target) Browser() bool {
	return t == TargetBrowser
}

// Valid reports whether the target names a known bundler output.
func (t Target) Valid() bool {
	return t == TargetBrowser || t == TargetServer
}

// Build is the environment surface of a build-configuration pass.
type Build struct {
	// MessagesDir is the directory holding per-locale message files.
	MessagesDir string `env:"LOCALEKIT_MESSAGES_DIR" envDefault:"config/locales"`

	// DefaultLocale overrides the default locale when it is available.
	DefaultLocale string `env:"LOCALEKIT_DEFAULT_LOCALE"`

	// Locales is a whitespace-separated allow-list restricting the build to
	// a subset of the discovered locales. Empty means all of them.
	Locales string `env:"LOCALEKIT_LOCALES"`

	// Target selects the bundler output being configured.
	Target Target `env:"LOCALEKIT_BUILD_TARGET" envDefault:"server"`
}

// AllowList returns the parsed locale allow-list, nil when unrestricted.
func (b Build) AllowList() []string {
	fields := strings.Fields(b.Locales)
	if len(fields) == 0 {
		return nil
	}
	return fields
}
