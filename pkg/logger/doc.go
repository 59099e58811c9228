// Package logger builds structured slog loggers for the toolkit.
//
// The factory covers the common needs in one place: output format and level,
// context extractors that inject request-scoped attributes into every
// record, and optional Sentry forwarding for warnings and errors.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
// With an empty Sentry DSN the logger degrades to local output only, so the
// same construction works in development and production.
package logger
