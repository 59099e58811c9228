package localekit

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dmitrymomot/localekit/pkg/config"
	"github.com/dmitrymomot/localekit/pkg/locales"
)

// banner announces the active locale set, one line per locale with its
// regional flag glyph when the identifier carries a region.
func banner(log *slog.Logger, set locales.Set, defaultLocale string, target config.Target) {
	log.Info("locale set configured",
		slog.Int("locales", len(set)),
		slog.String("default", defaultLocale),
		slog.String("target", string(target)),
	)

	for _, l := range set {
		attrs := []any{slog.String("locale", l)}
		if name := displayName(l); name != "" {
			attrs = append(attrs, slog.String("name", name))
		}
		if flag := flagGlyph(l); flag != "" {
			attrs = append(attrs, slog.String("flag", flag))
		}
		if l == defaultLocale {
			attrs = append(attrs, slog.Bool("default", true))
		}
		log.Info("locale enabled", attrs...)
	}
}

// flagGlyph builds the regional-indicator flag for a locale's region
// subtag. Locales without a two-letter region have no flag.
func flagGlyph(locale string) string {
	_, region, found := strings.Cut(locale, "-")
	if !found || len(region) != 2 {
		return ""
	}

	var b strings.Builder
	for _, c := range strings.ToUpper(region) {
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune('\U0001F1E6' + c - 'A')
	}
	return b.String()
}

// displayName resolves the English display name of a locale, empty when the
// identifier is not a recognizable BCP 47 tag.
func displayName(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	return display.English.Tags().Name(tag)
}
