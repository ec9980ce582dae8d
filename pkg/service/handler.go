package service

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/uiregistry/pkg/errors"
	"github.com/matzehuels/uiregistry/pkg/store"
)

// Index lists the precomputed components.
type Index struct {
	Name  string      `json:"name"`
	Items []IndexItem `json:"items"`
}

// IndexItem summarizes one component in the index.
type IndexItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Index returns the index of the registry, sorted by name.
func (s *Service) Index() Index {
	entries := s.reg.Entries()
	idx := Index{Name: s.cfg.Name, Items: make([]IndexItem, 0, len(entries))}
	for _, e := range entries {
		idx.Items = append(idx.Items, IndexItem{
			Name:        e.Name,
			Type:        ItemType,
			Title:       e.DisplayName,
			Description: e.Description,
		})
	}
	return idx
}

// Handler returns the HTTP handler for the service. When metrics is non-nil
// it is mounted at /metrics.
func (s *Service) Handler(metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger(s.cfg.Logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorDocument{Error: notFoundMessage})
	})
	r.Get("/r/{slug}", s.handleComponent)
	r.Get("/registry.json", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	return r
}

func (s *Service) handleComponent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	doc, _, err := s.Resolve(r.Context(), slug)
	if err != nil {
		status := errors.HTTPStatus(err)
		msg := notFoundMessage
		if status != http.StatusNotFound {
			msg = http.StatusText(status)
			s.cfg.Logger.Error("resolve failed", "slug", slug, "err", err)
		}
		writeJSON(w, r, status, errorDocument{Error: msg})
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

func (s *Service) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Index())
}

// writeJSON encodes v without HTML escaping and tags successful responses
// with a content hash ETag.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	if status == http.StatusOK {
		etag := `"` + store.Hash(buf.Bytes()) + `"`
		h.Set("ETag", etag)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
