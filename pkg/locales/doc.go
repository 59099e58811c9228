// Package locales enumerates the locales available to a build from a
// directory of per-locale message files.
//
// A file named "fr.yml" contributes the locale "fr"; malformed names are
// silently dropped and the base locale "en" always leads the set. The
// resulting Set carries the derived default locale and language subtags that
// the rest of the toolkit uses to scope bundler output.
//
//	set, err := locales.ScanDir("config/locales",
//		locales.WithDefaultLocale(os.Getenv("LOCALEKIT_DEFAULT_LOCALE")),
//		locales.WithAllowList(os.Getenv("LOCALEKIT_LOCALES")),
//	)
//	if err != nil {
//		return err
//	}
//	def := set.Default(os.Getenv("LOCALEKIT_DEFAULT_LOCALE"))
//
// Negotiate matches an Accept-Language header against a Set for servers that
// pick a locale per request.
package locales
