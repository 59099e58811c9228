package chunk

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/localekit/pkg/locales"
)

// Registry receives locale data as it is loaded. It abstracts the formatting
// library's global data store so loaders depend on an interface instead of a
// process-wide singleton.
type Registry interface {
	Register(language string, data []byte) error
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(language string, data []byte) error

func (f RegistryFunc) Register(language string, data []byte) error {
	return f(language, data)
}

type nopRegistry struct{}

func (nopRegistry) Register(string, []byte) error { return nil }

// Loader lazily fetches per-locale chunks and registers locale data with the
// Registry. Every load is memoized per key for the life of the process:
// repeated and concurrent calls with the same locale observe exactly one
// underlying fetch. Only successes are memoized; a failed fetch surfaces to
// every caller sharing the flight and the next call retries.
//
// A Loader is safe for concurrent use.
type Loader struct {
	source   Source
	registry Registry
	base     string
	polyfill bool

	group    singleflight.Group
	mu       sync.RWMutex
	data     map[string][]byte
	catalogs map[string]map[string]string
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the registry receiving loaded locale data.
func WithRegistry(r Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithBaseLocale overrides the base locale. Data and messages for the base
// locale resolve immediately with no fetch: its payloads ship with the main
// bundle.
func WithBaseLocale(locale string) Option {
	return func(l *Loader) {
		if locale != "" {
			l.base = locale
		}
	}
}

// WithPolyfill marks the runtime polyfill as active. When inactive (native
// support present, or a target whose polyfill bundles everything upfront),
// LoadPolyfillData resolves immediately without fetching.
func WithPolyfill(active bool) Option {
	return func(l *Loader) { l.polyfill = active }
}

// New creates a Loader reading from the given source.
func New(source Source, opts ...Option) *Loader {
	l := &Loader{
		source:   source,
		registry: nopRegistry{},
		base:     locales.BaseLocale,
		data:     make(map[string][]byte),
		catalogs: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadLanguageData loads and registers the formatting-library data for a
// language. The base language resolves immediately with nil data.
func (l *Loader) LoadLanguageData(ctx context.Context, language string) ([]byte, error) {
	if strings.EqualFold(language, locales.Language(l.base)) {
		return nil, nil
	}

	return l.loadOnce(ctx, "data:"+strings.ToLower(language), func(ctx context.Context) ([]byte, error) {
		data, err := l.source.LocaleData(ctx, language)
		if err != nil {
			return nil, err
		}
		if err := l.registry.Register(language, data); err != nil {
			return nil, fmt.Errorf("chunk: registering %q locale data: %w", language, err)
		}
		return data, nil
	})
}

// LoadLocaleData derives the language from the locale and delegates to
// LoadLanguageData.
func (l *Loader) LoadLocaleData(ctx context.Context, locale string) ([]byte, error) {
	return l.LoadLanguageData(ctx, locales.Language(locale))
}

// LoadPolyfillData loads the polyfill data chunk for a locale. It resolves
// immediately when no polyfill is active.
func (l *Loader) LoadPolyfillData(ctx context.Context, locale string) ([]byte, error) {
	if !l.polyfill {
		return nil, nil
	}

	return l.loadOnce(ctx, "polyfill:"+strings.ToLower(locale), func(ctx context.Context) ([]byte, error) {
		data, err := l.source.PolyfillData(ctx, locale)
		if err != nil {
			return nil, err
		}
		if err := l.registry.Register(locale, data); err != nil {
			return nil, fmt.Errorf("chunk: registering %q polyfill data: %w", locale, err)
		}
		return data, nil
	})
}

// LoadMessages loads and parses the message catalog for a locale into a
// flattened key-value map. The base locale resolves immediately with a nil
// map: its messages are the untranslated defaults already in the code.
func (l *Loader) LoadMessages(ctx context.Context, locale string) (map[string]string, error) {
	if strings.EqualFold(locale, l.base) {
		return nil, nil
	}

	key := "messages:" + strings.ToLower(locale)

	l.mu.RLock()
	catalog, ok := l.catalogs[key]
	l.mu.RUnlock()
	if ok {
		return catalog, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		raw, err := l.source.Messages(ctx, locale)
		if err != nil {
			return nil, err
		}

		catalog, err := parseCatalog(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMessages, locale, err)
		}

		l.mu.Lock()
		l.catalogs[key] = catalog
		l.mu.Unlock()

		return catalog, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[string]string), nil
}

// LoadAll loads the message catalog concurrently with the locale data and
// polyfill data for a locale. It returns the catalog when everything
// completed, or the first error.
func (l *Loader) LoadAll(ctx context.Context, locale string) (map[string]string, error) {
	var catalog map[string]string

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = l.LoadMessages(ctx, locale)
		return err
	})
	g.Go(func() error {
		if _, err := l.LoadLocaleData(ctx, locale); err != nil {
			return err
		}
		_, err := l.LoadPolyfillData(ctx, locale)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return catalog, nil
}

// loadOnce memoizes a successful fetch per key and collapses concurrent
// fetches for the same key into one flight.
func (l *Loader) loadOnce(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	l.mu.RLock()
	data, ok := l.data[key]
	l.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.data[key] = data
		l.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}
