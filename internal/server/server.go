package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vkalinin/pairtiles/internal/provider"
)

// Server bundles the router and the disk catalog.
type Server struct {
	r       *chi.Mux
	catalog *Catalog
	logger  *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(catalog *Catalog, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{r: chi.NewRouter(), catalog: catalog, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(15 * time.Second))
	s.r.Use(s.requestLogger)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/collections", s.handleListCollections)
	s.r.Get("/collections/{collectionID}/pairs", s.handleListPairs)
	s.r.Get("/collections/{collectionID}/assets/{filename}", s.handleGetAsset)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.logger.Info("content server listening", "addr", addr)
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := s.catalog.List()
	if err != nil {
		s.logger.Error("listing collections", "error", err)
		writeError(w, http.StatusInternalServerError, "collections directory unavailable")
		return
	}

	summaries := make([]provider.CollectionSummary, 0, len(collections))
	for _, col := range collections {
		summary := provider.CollectionSummary{
			ID:          col.ID,
			Title:       col.Title,
			Description: col.Description,
			PairCount:   len(col.Pairs),
			Source:      col.Source,
		}
		if col.Icon != "" {
			summary.IconURL = assetURL(col.ID, col.Icon)
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleListPairs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "collectionID")
	col, err := s.catalog.Get(id)
	if err != nil {
		if errors.Is(err, ErrNoCollection) {
			writeError(w, http.StatusNotFound, "collection not found")
			return
		}
		s.logger.Error("loading collection", "collection", id, "error", err)
		writeError(w, http.StatusInternalServerError, "collection unavailable")
		return
	}

	records := make([]provider.PairRecord, len(col.Pairs))
	for i, pair := range col.Pairs {
		records[i] = provider.FromPair(pair)
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "collectionID")
	filename := chi.URLParam(r, "filename")

	path, err := s.catalog.AssetPath(id, filename)
	if err != nil {
		writeError(w, http.StatusNotFound, "asset not found")
		return
	}

	// ServeFile picks the content type from the extension, which AssetPath
	// has already restricted to known image formats.
	http.ServeFile(w, r, path)
}

// requestLogger logs one line per request in the structured style used
// across the platform.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
