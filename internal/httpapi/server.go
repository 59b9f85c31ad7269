// Package httpapi implements the read-only query server exposed by
// `tsg serve`: a chi router over the in-memory documents loaded at
// startup, backed by a document metadata index and a traversal-result
// cache.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tsgraph/tsg/pkg/cache"
	"github.com/tsgraph/tsg/pkg/observability"
	"github.com/tsgraph/tsg/pkg/store"
	"github.com/tsgraph/tsg/pkg/tsg/analysis"
	"github.com/tsgraph/tsg/pkg/tsg/document"
	"github.com/tsgraph/tsg/pkg/tsg/graph"
	"github.com/tsgraph/tsg/pkg/tsg/traverse"
)

// Server is the query server's HTTP surface.
type Server struct {
	router chi.Router
	index  store.Index
	cache  cache.Cache
	keyer  cache.Keyer

	mu   sync.RWMutex
	docs map[string]*document.Document
}

// New builds a Server backed by idx (document metadata) and c (traversal
// and render result caching). c may be a NullCache to disable caching.
func New(idx store.Index, c cache.Cache, keyer cache.Keyer) *Server {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	s := &Server{
		index: idx,
		cache: c,
		keyer: keyer,
		docs:  make(map[string]*document.Document),
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// LoadDocument registers a parsed document under id and indexes its
// section-level metadata.
func (s *Server) LoadDocument(ctx context.Context, id, sourcePath string, doc *document.Document) error {
	s.mu.Lock()
	s.docs[id] = doc
	s.mu.Unlock()

	rec := &store.DocumentRecord{
		ID:         id,
		SourcePath: sourcePath,
		IndexedAt:  time.Now(),
	}
	for _, sec := range doc.Sections() {
		summary := analysis.Summarize(sec)
		rec.Sections = append(rec.Sections, store.SectionSummary{
			ID:       sec.ID,
			Nodes:    summary.Nodes,
			Edges:    summary.Edges,
			Paths:    summary.Paths,
			Topology: string(analysis.ClassifyTopology(sec)),
		})
	}
	return s.index.Put(ctx, rec)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Get("/documents", s.handleListDocuments)
	r.Get("/documents/{docID}", s.handleGetDocument)
	r.Get("/documents/{docID}/sections/{sectionID}/summary", s.handleSectionSummary)
	r.Get("/documents/{docID}/sections/{sectionID}/topology", s.handleSectionTopology)
	r.Get("/documents/{docID}/sections/{sectionID}/paths", s.handleSectionPaths)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, http.StatusOK, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.index.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.index.Get(r.Context(), chi.URLParam(r, "docID"))
	if err == store.ErrNotFound {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSectionSummary(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(chi.URLParam(r, "docID"), chi.URLParam(r, "sectionID"))
	if !ok {
		writeError(w, http.StatusNotFound, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, analysis.Summarize(sec))
}

func (s *Server) handleSectionTopology(w http.ResponseWriter, r *http.Request) {
	sec, ok := s.section(chi.URLParam(r, "docID"), chi.URLParam(r, "sectionID"))
	if !ok {
		writeError(w, http.StatusNotFound, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"topology": string(analysis.ClassifyTopology(sec))})
}

func (s *Server) handleSectionPaths(w http.ResponseWriter, r *http.Request) {
	docID, sectionID := chi.URLParam(r, "docID"), chi.URLParam(r, "sectionID")
	sec, ok := s.section(docID, sectionID)
	if !ok {
		writeError(w, http.StatusNotFound, store.ErrNotFound)
		return
	}

	opts := traverse.DefaultOptions()
	key := s.keyer.TraversalKey(cache.Hash([]byte(docID+"/"+sectionID)), cache.TraversalKeyOpts{
		RevisitCap: opts.RevisitCap,
	})

	if s.cache != nil {
		if data, hit, _ := s.cache.Get(r.Context(), key); hit {
			observability.Cache().OnCacheHit(r.Context(), "traversal")
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}
		observability.Cache().OnCacheMiss(r.Context(), "traversal")
	}

	start := time.Now()
	observability.Engine().OnTraverseStart(r.Context(), sectionID, len(sec.NodeIDs()))
	paths, err := traverse.Traverse(sec, opts)
	observability.Engine().OnTraverseComplete(r.Context(), sectionID, len(paths), time.Since(start), err)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	data, err := json.Marshal(pathResponses(paths))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if s.cache != nil {
		_ = s.cache.Set(r.Context(), key, data, time.Hour)
		observability.Cache().OnCacheSet(r.Context(), "traversal", len(data))
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// pathResponse is the wire form of one enumerated path: its id plus the
// spec's "n1+ e1+ n2+" display form, rather than the raw internal element
// slice.
type pathResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

func pathResponses(paths []*traverse.Path) []pathResponse {
	out := make([]pathResponse, len(paths))
	for i, p := range paths {
		out[i] = pathResponse{ID: p.ID, Path: p.String()}
	}
	return out
}

func (s *Server) section(docID, sectionID string) (*graph.Section, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[docID]
	if !ok {
		return nil, false
	}
	return doc.Section(sectionID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
