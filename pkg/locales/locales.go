package locales

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"
)

// BaseLocale is the locale of the default (untranslated) message set.
// It is always part of the enumerated set, with or without a message file.
const BaseLocale = "en"

// identifierPattern validates locale identifiers: a language subtag with an
// optional region/script suffix, e.g. "en", "en-US", "zh-hant".
var identifierPattern = regexp.MustCompile(`(?i)^[a-z]+(-[a-z0-9]+)?$`)

// Valid reports whether s is a well-formed locale identifier.
func Valid(s string) bool {
	return identifierPattern.MatchString(s)
}

// Language strips the region suffix from a locale identifier.
// "en-US" becomes "en"; identifiers without a region are returned unchanged.
func Language(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return locale[:i]
	}
	return locale
}

// Set is an ordered, de-duplicated list of locale identifiers. The first
// entry is the fallback default when no override applies. A Set is immutable
// once returned by Scan.
type Set []string

type scanOptions struct {
	defaultLocale string
	allowList     []string
}

// ScanOption configures locale enumeration.
type ScanOption func(*scanOptions)

// WithDefaultLocale requests the given locale as the build's default.
// The override only takes effect when the locale is actually available;
// otherwise the first entry of the set remains the default.
func WithDefaultLocale(locale string) ScanOption {
	return func(o *scanOptions) {
		o.defaultLocale = strings.TrimSpace(locale)
	}
}

// WithAllowList restricts the enumerated set to the given locales
// (case-insensitive). The base locale is always retained.
func WithAllowList(allowed ...string) ScanOption {
	return func(o *scanOptions) {
		for _, a := range allowed {
			for f := range strings.FieldsSeq(a) {
				o.allowList = append(o.allowList, f)
			}
		}
	}
}

// Scan enumerates the locales available in the root of fsys. Every file named
// "<locale>.<ext>" contributes one candidate identifier; malformed names are
// dropped, duplicates keep their first-seen form, and the base locale leads
// the set whether or not a file for it exists.
//
// An empty or unreadable filesystem yields a set containing only BaseLocale.
func Scan(fsys fs.FS, opts ...ScanOption) Set {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}

	var candidates []string
	entries, err := fs.ReadDir(fsys, ".")
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			stem := strings.TrimSuffix(name, path.Ext(name))
			candidates = append(candidates, stem)
		}
	}

	ordered := make([]string, 0, len(candidates)+2)
	ordered = append(ordered, BaseLocale)
	if o.defaultLocale != "" && containsFold(candidates, o.defaultLocale) {
		ordered = append(ordered, o.defaultLocale)
	}
	ordered = append(ordered, candidates...)

	set := make(Set, 0, len(ordered))
	seen := make(map[string]bool, len(ordered))
	for _, c := range ordered {
		if !Valid(c) {
			continue
		}
		if len(o.allowList) > 0 && !strings.EqualFold(c, BaseLocale) && !containsFold(o.allowList, c) {
			continue
		}
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		set = append(set, c)
	}

	return set
}

// ScanDir enumerates the locales available in a directory on the host
// filesystem. Unlike Scan, a missing or unreadable directory is an error:
// build configuration must not silently proceed without its message files.
func ScanDir(dir string, opts ...ScanOption) (Set, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableDir, dir, err)
	}
	return Scan(os.DirFS(dir), opts...), nil
}

// Default resolves the build's default locale: the override when it is part
// of the set (case-insensitive, returning the set's canonical form), else the
// first entry.
func (s Set) Default(override string) string {
	if len(s) == 0 {
		return BaseLocale
	}
	for _, l := range s {
		if strings.EqualFold(l, override) {
			return l
		}
	}
	return s[0]
}

// Contains reports whether the set includes the locale, case-insensitively.
func (s Set) Contains(locale string) bool {
	return containsFold(s, locale)
}

// Languages returns the de-duplicated language subtags of the set, in set
// order.
func (s Set) Languages() []string {
	langs := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, l := range s {
		lang := Language(l)
		key := strings.ToLower(lang)
		if seen[key] {
			continue
		}
		seen[key] = true
		langs = append(langs, lang)
	}
	return langs
}

// DataLanguages returns Languages minus the base language. Locale data for
// the base language ships inside the formatting libraries themselves, so it
// never needs a dedicated data chunk.
func (s Set) DataLanguages() []string {
	langs := s.Languages()
	out := langs[:0]
	for _, l := range langs {
		if strings.EqualFold(l, BaseLocale) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func containsFold(list []string, s string) bool {
	for _, l := range list {
		if strings.EqualFold(l, s) {
			return true
		}
	}
	return false
}
