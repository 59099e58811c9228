package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type options struct {
	writer     io.Writer
	level      slog.Level
	format     Format
	extractors []ContextExtractor
	sentry     *SentryConfig
}

// Option configures the logger factory.
type Option func(*options)

// WithLevel sets the minimum log level. Default is Info.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithFormat selects text or JSON output. Default is JSON.
func WithFormat(format Format) Option {
	return func(o *options) { o.format = format }
}

// WithWriter redirects output. Default is os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExtractors adds context extractors injecting request-scoped attributes
// into every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// SentryConfig enables forwarding warnings and errors to Sentry.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
}

// WithSentry forwards warnings and errors to Sentry alongside the primary
// output. An empty DSN disables forwarding, so the same code path works in
// development.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) { o.sentry = &cfg }
}

// New creates a structured logger. Without options it logs JSON to stdout at
// Info level.
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
		format: FormatJSON,
	}
	for _, opt := range opts {
		opt(o)
	}

	var handler slog.Handler
	switch o.format {
	case FormatText:
		handler = slog.NewTextHandler(o.writer, &slog.HandlerOptions{Level: o.level})
	default:
		handler = slog.NewJSONHandler(o.writer, &slog.HandlerOptions{Level: o.level})
	}

	if o.sentry != nil && o.sentry.DSN != "" {
		if sh, err := sentryHandler(*o.sentry); err == nil {
			handler = newMultiHandler(handler, sh)
		} else {
			slog.New(handler).Error("sentry init failed, logging locally only",
				slog.String("error", err.Error()))
		}
	}

	if len(o.extractors) > 0 {
		handler = newExtractorHandler(handler, o.extractors...)
	}

	return slog.New(handler)
}

// NewNope returns a logger that discards everything. Use it as the default
// when a component's caller did not provide a logger.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sentryHandler(cfg SentryConfig) (slog.Handler, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		return nil, err
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background()), nil
}
