package modfilter

import (
	"regexp"
	"strings"
	"sync/atomic"
)

// PathPattern returns a pattern matching the literal path as a prefix.
// Every regex metacharacter in the path is escaped, so a directory like
// "locale-data (v2)" can never widen the match.
func PathPattern(path string) string {
	return "^" + regexp.QuoteMeta(path)
}

// Path compiles PathPattern. The pattern is always valid because the input
// is fully escaped.
func Path(path string) *regexp.Regexp {
	return regexp.MustCompile(PathPattern(path))
}

// StemPattern returns a case-insensitive pattern matching any of the given
// identifiers as a file stem: anchored to a path separator (both slash
// flavors, so generated configs work on any host platform) and followed by an
// optional extension. When exts are given, only those extensions match;
// otherwise any single extension does.
//
// Identifiers and extensions are escaped literally. An empty identifier list
// yields a pattern that matches nothing.
func StemPattern(ids []string, exts ...string) string {
	if len(ids) == 0 {
		// Valid pattern that can never match: empty stem set means the
		// bundler context includes no modules at all.
		return `\z.`
	}

	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = regexp.QuoteMeta(id)
	}

	ext := `\.[a-z0-9]+`
	if len(exts) > 0 {
		quotedExts := make([]string, len(exts))
		for i, e := range exts {
			quotedExts[i] = regexp.QuoteMeta(strings.TrimPrefix(e, "."))
		}
		ext = `\.(?:` + strings.Join(quotedExts, "|") + `)`
	}

	return `(?i)[/\\](?:` + strings.Join(quoted, "|") + `)(?:` + ext + `)?$`
}

// Stems compiles StemPattern.
func Stems(ids []string, exts ...string) *regexp.Regexp {
	return regexp.MustCompile(StemPattern(ids, exts...))
}

// Observer is notified when a matcher accepts a module path. dir identifies
// the bundler context the matcher restricts.
type Observer func(dir, name string)

// Matcher pairs a compiled filter with an optional match observer. It
// replaces the habit of wrapping a regex's test method to spy on bundler
// matching: observation is an explicit part of the contract instead.
//
// Matchers are safe for concurrent use.
type Matcher struct {
	re       *regexp.Regexp
	dir      string
	obs      Observer
	once     bool
	notified atomic.Bool
}

// NewMatcher returns a Matcher that notifies the observer on every match.
func NewMatcher(re *regexp.Regexp, dir string, obs Observer) *Matcher {
	return &Matcher{re: re, dir: dir, obs: obs}
}

// NewOnceMatcher returns a Matcher that notifies the observer only on the
// first match; use it to announce that a context produced at least one
// module without flooding the build log.
func NewOnceMatcher(re *regexp.Regexp, dir string, obs Observer) *Matcher {
	return &Matcher{re: re, dir: dir, obs: obs, once: true}
}

// Match reports whether name is accepted by the filter, notifying the
// observer according to the matcher's policy.
func (m *Matcher) Match(name string) bool {
	if !m.re.MatchString(name) {
		return false
	}
	if m.obs != nil {
		if !m.once || m.notified.CompareAndSwap(false, true) {
			m.obs(m.dir, name)
		}
	}
	return true
}

// Pattern returns the underlying pattern string.
func (m *Matcher) Pattern() string {
	return m.re.String()
}
