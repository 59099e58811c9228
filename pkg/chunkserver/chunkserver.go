package chunkserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localekit/pkg/chunk"
	"github.com/dmitrymomot/localekit/pkg/locales"
	"github.com/dmitrymomot/localekit/pkg/logger"
)

// Chunks are immutable per build, so clients may cache them forever.
const cacheControl = "public, max-age=31536000, immutable"

// Server serves per-locale chunks to browser-targeted builds over HTTP. It
// is the counterpart of chunk.Remote: same endpoint layout, same payloads.
type Server struct {
	source chunk.Source
	set    locales.Set
	log    *slog.Logger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLocales restricts serving to the active locale set and enables the
// /locale negotiation endpoint. Requests for locales outside the set answer
// 404 without touching the source.
func WithLocales(set locales.Set) Option {
	return func(s *Server) { s.set = set }
}

// WithLogger sets the request logger. Default discards.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a chunk-serving handler backed by the source.
func New(source chunk.Source, opts ...Option) *Server {
	s := &Server{
		source: source,
		log:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/locale-data/{language}", s.localeData)
	r.Get("/polyfill-data/{locale}", s.polyfillData)
	r.Get("/messages/{locale}", s.messages)
	r.Get("/locale", s.negotiate)
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) localeData(w http.ResponseWriter, r *http.Request) {
	s.serveChunk(w, r, chi.URLParam(r, "language"), "application/json", s.languageActive, s.source.LocaleData)
}

func (s *Server) polyfillData(w http.ResponseWriter, r *http.Request) {
	s.serveChunk(w, r, chi.URLParam(r, "locale"), "application/json", s.localeActive, s.source.PolyfillData)
}

func (s *Server) messages(w http.ResponseWriter, r *http.Request) {
	s.serveChunk(w, r, chi.URLParam(r, "locale"), "application/yaml", s.localeActive, s.source.Messages)
}

// localeActive reports whether the id is a member of the active set.
func (s *Server) localeActive(id string) bool {
	return len(s.set) == 0 || s.set.Contains(id)
}

// languageActive reports whether the id is the language subtag of any active
// locale. Locale-data chunks are keyed by language, so a set holding fr-CA
// must still serve /locale-data/fr.
func (s *Server) languageActive(id string) bool {
	if len(s.set) == 0 {
		return true
	}
	for _, lang := range s.set.Languages() {
		if strings.EqualFold(lang, id) {
			return true
		}
	}
	return false
}

// negotiate answers the best locale from the active set for the request's
// Accept-Language header. Only available when the server knows its set.
func (s *Server) negotiate(w http.ResponseWriter, r *http.Request) {
	if len(s.set) == 0 {
		http.Error(w, "locale negotiation not configured", http.StatusNotFound)
		return
	}

	locale := locales.Negotiate(r.Header.Get("Accept-Language"), s.set)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Vary", "Accept-Language")
	_, _ = w.Write([]byte(locale))
}

func (s *Server) serveChunk(w http.ResponseWriter, r *http.Request, id, contentType string, active func(string) bool, fetch func(ctx context.Context, id string) ([]byte, error)) {
	if !locales.Valid(id) {
		http.Error(w, "malformed locale identifier", http.StatusBadRequest)
		return
	}
	if !active(id) {
		http.Error(w, "locale not in active set", http.StatusNotFound)
		return
	}

	data, err := fetch(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, chunk.ErrNotFound):
		s.log.InfoContext(r.Context(), "chunk not found",
			slog.String("id", id), slog.String("path", r.URL.Path))
		http.Error(w, "no chunk for locale", http.StatusNotFound)
		return
	default:
		s.log.ErrorContext(r.Context(), "chunk fetch failed",
			slog.String("id", id), slog.String("error", err.Error()))
		http.Error(w, "chunk fetch failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", cacheControl)
	_, _ = w.Write(data)
}
