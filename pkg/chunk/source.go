package chunk

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Source supplies raw chunk payloads for a locale. Implementations decide
// where the bytes live: resident in the build output, or fetched lazily over
// the network. The loader treats payloads as opaque.
type Source interface {
	// LocaleData returns the formatting-library data chunk for a language.
	LocaleData(ctx context.Context, language string) ([]byte, error)

	// PolyfillData returns the runtime polyfill data chunk for a locale.
	PolyfillData(ctx context.Context, locale string) ([]byte, error)

	// Messages returns the raw message catalog for a locale.
	Messages(ctx context.Context, locale string) ([]byte, error)
}

// Resident serves chunks from filesystems that already ship with the build,
// the non-browser target where the bundler keeps all locale payloads
// resident. Lookups are plain file reads; nothing is fetched on demand.
type Resident struct {
	localeData fs.FS
	polyfill   fs.FS
	messages   fs.FS
}

// ResidentOption configures a Resident source.
type ResidentOption func(*Resident)

// WithPolyfillFS sets the filesystem holding polyfill data chunks. Without
// it, polyfill lookups report ErrNotFound; the non-browser polyfill bundles
// its data upfront, so most server builds never need this.
func WithPolyfillFS(fsys fs.FS) ResidentOption {
	return func(r *Resident) { r.polyfill = fsys }
}

// NewResident creates a Source reading locale data and message catalogs from
// the given filesystems.
func NewResident(localeData, messages fs.FS, opts ...ResidentOption) *Resident {
	r := &Resident{localeData: localeData, messages: messages}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resident) LocaleData(_ context.Context, language string) ([]byte, error) {
	return readByStem(r.localeData, language)
}

func (r *Resident) PolyfillData(_ context.Context, locale string) ([]byte, error) {
	if r.polyfill == nil {
		return nil, fmt.Errorf("%w: %s (no polyfill filesystem configured)", ErrNotFound, locale)
	}
	return readByStem(r.polyfill, locale)
}

func (r *Resident) Messages(_ context.Context, locale string) ([]byte, error) {
	return readByStem(r.messages, locale)
}

// readByStem finds the single file whose stem equals the identifier,
// case-insensitively and regardless of extension, mirroring how the
// enumerator derived the identifier in the first place.
func readByStem(fsys fs.FS, stem string) ([]byte, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, stem)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("chunk: reading source dir: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(strings.TrimSuffix(name, path.Ext(name)), stem) {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("chunk: reading %q: %w", name, err)
			}
			return data, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, stem)
}
