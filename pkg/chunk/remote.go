package chunk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/localekit/pkg/chunkcache"
)

// Remote fetches chunks lazily over HTTP, the browser-target behavior where
// locale payloads live in separate build chunks and are requested on first
// use. The endpoint layout matches pkg/chunkserver.
type Remote struct {
	baseURL string
	client  *http.Client
	cache   chunkcache.Cache
	fill    *chunkcache.Filler
}

// RemoteOption configures a Remote source.
type RemoteOption func(*Remote)

// WithHTTPClient sets the HTTP client used for chunk fetches.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(r *Remote) {
		if client != nil {
			r.client = client
		}
	}
}

// WithCache adds a shared second-level cache in front of the network, so a
// fleet of processes fetches each chunk once.
func WithCache(cache chunkcache.Cache) RemoteOption {
	return func(r *Remote) { r.cache = cache }
}

// NewRemote creates a Source fetching chunks from baseURL.
func NewRemote(baseURL string, opts ...RemoteOption) *Remote {
	r := &Remote{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache != nil {
		r.fill = chunkcache.NewFiller(r.cache)
	}
	return r
}

func (r *Remote) LocaleData(ctx context.Context, language string) ([]byte, error) {
	return r.fetch(ctx, "locale-data", language)
}

func (r *Remote) PolyfillData(ctx context.Context, locale string) ([]byte, error) {
	return r.fetch(ctx, "polyfill-data", locale)
}

func (r *Remote) Messages(ctx context.Context, locale string) ([]byte, error) {
	return r.fetch(ctx, "messages", locale)
}

func (r *Remote) fetch(ctx context.Context, kind, id string) ([]byte, error) {
	if r.fill == nil {
		return r.get(ctx, kind, id)
	}
	return r.fill.GetOrFetch(ctx, kind+":"+id, func(ctx context.Context) ([]byte, error) {
		return r.get(ctx, kind, id)
	})
}

func (r *Remote) get(ctx context.Context, kind, id string) ([]byte, error) {
	u := r.baseURL + "/" + kind + "/" + url.PathEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("chunk: building request for %s/%s: %w", kind, id, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chunk: fetching %s/%s: %w", kind, id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
	default:
		return nil, fmt.Errorf("%w: %s fetching %s/%s", ErrBadStatus, resp.Status, kind, id)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("chunk: reading %s/%s: %w", kind, id, err)
	}

	return data, nil
}
