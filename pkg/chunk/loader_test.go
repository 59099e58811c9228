package chunk_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localekit/pkg/chunk"
)

// countingSource is a Source test double recording fetch counts per kind.
type countingSource struct {
	localeData   map[string][]byte
	polyfillData map[string][]byte
	messages     map[string][]byte

	dataCalls     atomic.Int32
	polyfillCalls atomic.Int32
	messageCalls  atomic.Int32

	// when set, fetches block until released
	block chan struct{}
}

func (s *countingSource) LocaleData(_ context.Context, language string) ([]byte, error) {
	s.dataCalls.Add(1)
	if s.block != nil {
		<-s.block
	}
	data, ok := s.localeData[language]
	if !ok {
		return nil, chunk.ErrNotFound
	}
	return data, nil
}

func (s *countingSource) PolyfillData(_ context.Context, locale string) ([]byte, error) {
	s.polyfillCalls.Add(1)
	data, ok := s.polyfillData[locale]
	if !ok {
		return nil, chunk.ErrNotFound
	}
	return data, nil
}

func (s *countingSource) Messages(_ context.Context, locale string) ([]byte, error) {
	s.messageCalls.Add(1)
	if s.block != nil {
		<-s.block
	}
	data, ok := s.messages[locale]
	if !ok {
		return nil, chunk.ErrNotFound
	}
	return data, nil
}

// recordingRegistry records Register calls.
type recordingRegistry struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{entries: make(map[string][]byte)}
}

func (r *recordingRegistry) Register(language string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[language] = data
	return nil
}

func (r *recordingRegistry) get(language string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.entries[language]
	return data, ok
}

func TestLoadLanguageData(t *testing.T) {
	t.Parallel()

	t.Run("base language resolves immediately", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		data, err := l.LoadLanguageData(context.Background(), "en")
		require.NoError(t, err)
		require.Nil(t, data)
		require.Zero(t, src.dataCalls.Load())
	})

	t.Run("fetches and registers non-base language", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{"fr": []byte("fr-data")}}
		reg := newRecordingRegistry()
		l := chunk.New(src, chunk.WithRegistry(reg))

		data, err := l.LoadLanguageData(context.Background(), "fr")
		require.NoError(t, err)
		require.Equal(t, []byte("fr-data"), data)

		registered, ok := reg.get("fr")
		require.True(t, ok)
		require.Equal(t, []byte("fr-data"), registered)
	})

	t.Run("memoizes per language", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{"fr": []byte("fr-data")}}
		l := chunk.New(src)

		for range 3 {
			_, err := l.LoadLanguageData(context.Background(), "fr")
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), src.dataCalls.Load())
	})

	t.Run("unknown language fails", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		_, err := l.LoadLanguageData(context.Background(), "xx")
		require.ErrorIs(t, err, chunk.ErrNotFound)
	})

	t.Run("failure is not memoized", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{}}
		l := chunk.New(src)

		_, err := l.LoadLanguageData(context.Background(), "fr")
		require.Error(t, err)

		// The chunk appears, the next call retries and succeeds.
		src.localeData["fr"] = []byte("fr-data")
		data, err := l.LoadLanguageData(context.Background(), "fr")
		require.NoError(t, err)
		require.Equal(t, []byte("fr-data"), data)
		require.Equal(t, int32(2), src.dataCalls.Load())
	})

	t.Run("registry failure surfaces", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{"fr": []byte("x")}}
		wantErr := errors.New("registry full")
		l := chunk.New(src, chunk.WithRegistry(chunk.RegistryFunc(func(string, []byte) error {
			return wantErr
		})))

		_, err := l.LoadLanguageData(context.Background(), "fr")
		require.ErrorIs(t, err, wantErr)
	})
}

func TestLoadLocaleData(t *testing.T) {
	t.Parallel()

	t.Run("derives language from locale", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{"pt": []byte("pt-data")}}
		reg := newRecordingRegistry()
		l := chunk.New(src, chunk.WithRegistry(reg))

		data, err := l.LoadLocaleData(context.Background(), "pt-BR")
		require.NoError(t, err)
		require.Equal(t, []byte("pt-data"), data)

		_, ok := reg.get("pt")
		require.True(t, ok)
	})

	t.Run("shares the memo with the language loader", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{localeData: map[string][]byte{"pt": []byte("pt-data")}}
		l := chunk.New(src)

		_, err := l.LoadLocaleData(context.Background(), "pt-BR")
		require.NoError(t, err)
		_, err = l.LoadLanguageData(context.Background(), "pt")
		require.NoError(t, err)
		require.Equal(t, int32(1), src.dataCalls.Load())
	})

	t.Run("base-language locale resolves immediately", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		data, err := l.LoadLocaleData(context.Background(), "en-US")
		require.NoError(t, err)
		require.Nil(t, data)
		require.Zero(t, src.dataCalls.Load())
	})
}

func TestLoadPolyfillData(t *testing.T) {
	t.Parallel()

	t.Run("inactive polyfill resolves immediately", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		data, err := l.LoadPolyfillData(context.Background(), "fr")
		require.NoError(t, err)
		require.Nil(t, data)
		require.Zero(t, src.polyfillCalls.Load())
	})

	t.Run("active polyfill fetches and registers", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{polyfillData: map[string][]byte{"fr": []byte("pf")}}
		reg := newRecordingRegistry()
		l := chunk.New(src, chunk.WithPolyfill(true), chunk.WithRegistry(reg))

		data, err := l.LoadPolyfillData(context.Background(), "fr")
		require.NoError(t, err)
		require.Equal(t, []byte("pf"), data)

		_, ok := reg.get("fr")
		require.True(t, ok)
	})

	t.Run("memoizes per locale", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{polyfillData: map[string][]byte{"fr": []byte("pf")}}
		l := chunk.New(src, chunk.WithPolyfill(true))

		for range 3 {
			_, err := l.LoadPolyfillData(context.Background(), "fr")
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), src.polyfillCalls.Load())
	})
}

func TestLoadMessages(t *testing.T) {
	t.Parallel()

	t.Run("base locale resolves with nil catalog", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		catalog, err := l.LoadMessages(context.Background(), "en")
		require.NoError(t, err)
		require.Nil(t, catalog)
		require.Zero(t, src.messageCalls.Load())
	})

	t.Run("parses and flattens the catalog", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{messages: map[string][]byte{
			"fr": []byte("greeting: bonjour\nerrors:\n  not_found: introuvable\n"),
		}}
		l := chunk.New(src)

		catalog, err := l.LoadMessages(context.Background(), "fr")
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			"greeting":         "bonjour",
			"errors.not_found": "introuvable",
		}, catalog)
	})

	t.Run("memoizes the parsed catalog", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{messages: map[string][]byte{"fr": []byte("a: b\n")}}
		l := chunk.New(src)

		for range 3 {
			_, err := l.LoadMessages(context.Background(), "fr")
			require.NoError(t, err)
		}
		require.Equal(t, int32(1), src.messageCalls.Load())
	})

	t.Run("invalid catalog fails", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{messages: map[string][]byte{"fr": []byte("\t{nope")}}
		l := chunk.New(src)

		_, err := l.LoadMessages(context.Background(), "fr")
		require.ErrorIs(t, err, chunk.ErrInvalidMessages)
	})

	t.Run("missing catalog fails", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		_, err := l.LoadMessages(context.Background(), "de")
		require.ErrorIs(t, err, chunk.ErrNotFound)
	})
}

func TestLoaderConcurrency(t *testing.T) {
	t.Parallel()

	t.Run("concurrent loads share one fetch", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{
			messages: map[string][]byte{"fr": []byte("a: b\n")},
			block:    make(chan struct{}),
		}
		l := chunk.New(src)

		var wg sync.WaitGroup
		for range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				catalog, err := l.LoadMessages(context.Background(), "fr")
				assert.NoError(t, err)
				assert.Equal(t, "b", catalog["a"])
			}()
		}

		// Let both callers reach the in-flight fetch before releasing it.
		time.Sleep(50 * time.Millisecond)
		close(src.block)
		wg.Wait()

		require.Equal(t, int32(1), src.messageCalls.Load())
	})
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	t.Run("loads messages and data together", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{
			localeData:   map[string][]byte{"fr": []byte("fr-data")},
			polyfillData: map[string][]byte{"fr": []byte("pf")},
			messages:     map[string][]byte{"fr": []byte("a: b\n")},
		}
		reg := newRecordingRegistry()
		l := chunk.New(src, chunk.WithPolyfill(true), chunk.WithRegistry(reg))

		catalog, err := l.LoadAll(context.Background(), "fr")
		require.NoError(t, err)
		require.Equal(t, map[string]string{"a": "b"}, catalog)

		_, ok := reg.get("fr")
		require.True(t, ok)
		require.Equal(t, int32(1), src.dataCalls.Load())
		require.Equal(t, int32(1), src.polyfillCalls.Load())
		require.Equal(t, int32(1), src.messageCalls.Load())
	})

	t.Run("base locale loads nothing", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{}
		l := chunk.New(src)

		catalog, err := l.LoadAll(context.Background(), "en")
		require.NoError(t, err)
		require.Nil(t, catalog)
		require.Zero(t, src.dataCalls.Load())
		require.Zero(t, src.messageCalls.Load())
	})

	t.Run("any failure rejects the whole load", func(t *testing.T) {
		t.Parallel()
		src := &countingSource{
			messages: map[string][]byte{"fr": []byte("a: b\n")},
			// no locale data for fr
		}
		l := chunk.New(src)

		_, err := l.LoadAll(context.Background(), "fr")
		require.ErrorIs(t, err, chunk.ErrNotFound)
	})
}
