package localekit

import (
	"log/slog"

	"github.com/dmitrymomot/localekit/pkg/config"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

type options struct {
	messagesDir    string
	defaultLocale  string
	allowList      []string
	target         config.Target
	formatLib      Library
	translationLib Library
	log            *slog.Logger
}

// Option configures a build-configuration pass.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		messagesDir: "config/locales",
		target:      config.TargetServer,
		formatLib: Library{
			Name:     "intl",
			DataDir:  "node_modules/intl/locale-data/jsonp",
			DataFree: "intl/lib/core",
		},
		translationLib: Library{
			Name:     "react-intl",
			DataDir:  "node_modules/react-intl/locale-data",
			DataFree: "react-intl/dist/react-intl-no-data",
		},
		log: logger.NewNope(),
	}
}

// WithMessagesDir sets the directory of per-locale message files.
func WithMessagesDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.messagesDir = dir
		}
	}
}

// WithDefaultLocale requests a default locale; it applies only when the
// locale is actually available in the enumerated set.
func WithDefaultLocale(locale string) Option {
	return func(o *options) { o.defaultLocale = locale }
}

// WithAllowList restricts the build to a subset of the discovered locales.
func WithAllowList(allowed ...string) Option {
	return func(o *options) { o.allowList = append(o.allowList, allowed...) }
}

// WithTarget sets the bundler build target.
func WithTarget(target config.Target) Option {
	return func(o *options) {
		if target.Valid() {
			o.target = target
		}
	}
}

// WithFormatLibrary overrides the date/time formatting library whose
// locale-data context is narrowed and whose data-free variant is aliased.
func WithFormatLibrary(lib Library) Option {
	return func(o *options) { o.formatLib = lib }
}

// WithTranslationLibrary overrides the translation library whose
// locale-data context is narrowed and whose data-free variant is aliased.
func WithTranslationLibrary(lib Library) Option {
	return func(o *options) { o.translationLib = lib }
}

// WithLogger sets the logger for context-match notices and the startup
// banner. Default discards.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithBuild applies an environment-derived build configuration in one step.
func WithBuild(cfg config.Build) Option {
	return func(o *options) {
		if cfg.MessagesDir != "" {
			o.messagesDir = cfg.MessagesDir
		}
		o.defaultLocale = cfg.DefaultLocale
		o.allowList = append(o.allowList, cfg.AllowList()...)
		if cfg.Target.Valid() {
			o.target = cfg.Target
		}
	}
}

// ConfigureFromEnv loads the environment surface and runs Configure with it.
// Explicit options take precedence over the environment.
func ConfigureFromEnv(opts ...Option) (*Config, error) {
	var cfg config.Build
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return Configure(append([]Option{WithBuild(cfg)}, opts...)...)
}
