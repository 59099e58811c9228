package localekit

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/dmitrymomot/localekit/pkg/locales"
	"github.com/dmitrymomot/localekit/pkg/modfilter"
)

// Library describes a locale-data-carrying dependency of the build: the
// module the application imports, the directory its per-locale data lives
// in, and the data-free variant to alias in so only explicitly requested
// payloads enter the bundle.
type Library struct {
	Name     string
	DataDir  string
	DataFree string
}

// ContextRule narrows one bundler module context: within Directory, only
// modules accepted by ModulePattern are included.
type ContextRule struct {
	Directory        string `json:"directory"`
	DirectoryPattern string `json:"directory_pattern"`
	ModulePattern    string `json:"module_pattern"`

	ctx *modfilter.Matcher
	mod *modfilter.Matcher
}

// MatchContext reports whether dir is the context this rule narrows.
func (r *ContextRule) MatchContext(dir string) bool {
	return r.ctx.Match(dir)
}

// MatchModule reports whether a module path within the context is included.
func (r *ContextRule) MatchModule(name string) bool {
	return r.mod.Match(name)
}

// Alias redirects a module specifier to a different file.
type Alias struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Constants are the build-time values baked into the bundle and read-only
// at run time.
type Constants struct {
	MessagesDir   string   `json:"messages_dir"`
	BuildTarget   string   `json:"build_target"`
	Locales       []string `json:"locales"`
	DefaultLocale string   `json:"default_locale"`
}

// Define returns the constants as JSON-encoded values, keyed by the same
// names as the environment surface, in the shape build-time definition
// plugins expect. Runtime code reads these back as inlined constants.
func (c Constants) Define() map[string]string {
	locales, _ := json.Marshal(c.Locales)
	return map[string]string{
		"LOCALEKIT_MESSAGES_DIR":   strconv.Quote(c.MessagesDir),
		"LOCALEKIT_BUILD_TARGET":   strconv.Quote(c.BuildTarget),
		"LOCALEKIT_LOCALES":        string(locales),
		"LOCALEKIT_DEFAULT_LOCALE": strconv.Quote(c.DefaultLocale),
	}
}

// Config is the bundler configuration produced by Configure: three scoped
// context rules, two data-free aliases, and the baked-in constants.
// It is immutable once returned.
type Config struct {
	Rules     []ContextRule `json:"rules"`
	Aliases   []Alias       `json:"aliases"`
	Constants Constants     `json:"constants"`

	set locales.Set
}

// Locales returns the active locale set of the build.
func (c *Config) Locales() locales.Set {
	return c.set
}

// WriteJSON writes the configuration for consumption by the external
// bundler. Output is deterministic: identical inputs produce byte-identical
// documents.
func (c *Config) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("localekit: encoding config: %w", err)
	}
	return nil
}

// Configure runs one build-configuration pass: enumerate the message
// directory, derive the locale set, and produce the scoped rules, aliases,
// and constants for the bundler.
//
// A missing or unreadable message directory is fatal; the build must not
// proceed with an empty locale set by accident.
func Configure(opts ...Option) (*Config, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	set, err := locales.ScanDir(o.messagesDir,
		locales.WithDefaultLocale(o.defaultLocale),
		locales.WithAllowList(o.allowList...),
	)
	if err != nil {
		return nil, fmt.Errorf("localekit: enumerating %q: %w", o.messagesDir, err)
	}

	messagesDir, err := filepath.Abs(o.messagesDir)
	if err != nil {
		return nil, fmt.Errorf("localekit: resolving %q: %w", o.messagesDir, err)
	}

	defaultLocale := set.Default(o.defaultLocale)
	dataLangs := set.DataLanguages()

	cfg := &Config{
		Rules: []ContextRule{
			newRule(o, o.formatLib.DataDir, dataLangs),
			newRule(o, o.translationLib.DataDir, dataLangs),
			newRule(o, messagesDir, set),
		},
		Aliases: []Alias{
			{From: o.formatLib.Name, To: o.formatLib.DataFree},
			{From: o.translationLib.Name, To: o.translationLib.DataFree},
		},
		Constants: Constants{
			MessagesDir:   messagesDir,
			BuildTarget:   string(o.target),
			Locales:       set,
			DefaultLocale: defaultLocale,
		},
		set: set,
	}

	banner(o.log, set, defaultLocale, o.target)

	return cfg, nil
}

func newRule(o *options, dir string, ids []string) ContextRule {
	dirPattern := modfilter.PathPattern(dir)
	modPattern := modfilter.StemPattern(ids)

	log := o.log
	return ContextRule{
		Directory:        dir,
		DirectoryPattern: dirPattern,
		ModulePattern:    modPattern,
		ctx: modfilter.NewMatcher(modfilter.Path(dir), dir, func(d, name string) {
			log.Info("bundler context narrowed", slog.String("dir", d), slog.String("context", name))
		}),
		mod: modfilter.NewOnceMatcher(modfilter.Stems(ids), dir, func(d, name string) {
			log.Info("first module match in context", slog.String("dir", d), slog.String("module", name))
		}),
	}
}
