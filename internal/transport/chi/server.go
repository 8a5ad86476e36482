package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchable/internal/domain"
	domrec "github.com/kailas-cloud/searchable/internal/domain/record"
	logpkg "github.com/kailas-cloud/searchable/internal/logger"
	collectionuc "github.com/kailas-cloud/searchable/internal/usecase/collection"
	healthuc "github.com/kailas-cloud/searchable/internal/usecase/health"
	recorduc "github.com/kailas-cloud/searchable/internal/usecase/record"
	searchuc "github.com/kailas-cloud/searchable/internal/usecase/search"
	"github.com/kailas-cloud/searchable/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the keyword HTTP API.
type Server struct {
	collections   *collectionuc.Service
	records       *recorduc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	collections *collectionuc.Service,
	records *recorduc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		collections: collections,
		records:     records,
		search:      search,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeCollectionNotFound),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, CodeRecordNotFound),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCollection, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrExtractionFailed, http.StatusBadGateway, CodeExtractionFailed),
		sentinelHandler(domain.ErrTextSearchNotSupported, http.StatusNotImplemented, CodeTextSearchNotSupported),
	}
	return s
}

// Mount registers the API routes on r.
// Subrouters inherit the JSON not-found handlers only when they are set first.
func (s *Server) Mount(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeRouteNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed")
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/collections", s.ListCollections)
	r.Route("/collections/{collection}", func(r chi.Router) {
		r.Get("/", s.GetCollection)
		r.Post("/search", s.Search)
		r.Route("/records/{id}", func(r chi.Router) {
			r.Put("/", s.PutRecord)
			r.Get("/", s.GetRecord)
			r.Delete("/", s.DeleteRecord)
			r.Post("/keywords", s.AddKeywords)
			r.Delete("/keywords", s.RemoveKeywords)
		})
	})
}

// ListCollections handles GET /collections.
func (s *Server) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := s.collections.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]CollectionResponse, len(cols))
	for i, c := range cols {
		items[i] = collectionToResponse(c)
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items})
}

// GetCollection handles GET /collections/{collection}.
func (s *Server) GetCollection(w http.ResponseWriter, r *http.Request) {
	col, err := s.collections.Get(r.Context(), chi.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, collectionToResponse(col))
}

// PutRecord handles PUT /collections/{collection}/records/{id}.
func (s *Server) PutRecord(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var req PutRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	col, err := s.collections.Get(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if _, ok := req.Attributes[col.KeywordField()]; ok {
		writeError(w, http.StatusBadRequest, CodeValidationFailed,
			fmt.Sprintf("attribute %q is managed by the keyword pipeline; use the keywords field", col.KeywordField()))
		return
	}

	doc, created, err := s.records.Put(r.Context(), collection, id, req.Attributes, req.Keywords)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/collections/%s/records/%s", collection, id))
	}
	writeJSON(w, status, recordToResponse(col, doc))
}

// GetRecord handles GET /collections/{collection}/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	col, err := s.collections.Get(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	doc, err := s.records.Get(r.Context(), collection, chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(col, doc))
}

// DeleteRecord handles DELETE /collections/{collection}/records/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := s.records.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddKeywords handles POST /collections/{collection}/records/{id}/keywords.
func (s *Server) AddKeywords(w http.ResponseWriter, r *http.Request) {
	s.updateKeywords(w, r, s.records.AddKeywords)
}

// RemoveKeywords handles DELETE /collections/{collection}/records/{id}/keywords.
func (s *Server) RemoveKeywords(w http.ResponseWriter, r *http.Request) {
	s.updateKeywords(w, r, s.records.RemoveKeywords)
}

func (s *Server) updateKeywords(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, collection, id string, keywords any) (*domrec.Document, error),
) {
	collection := chi.URLParam(r, "collection")

	var req KeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Keywords == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "keywords is required")
		return
	}

	col, err := s.collections.Get(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	doc, err := apply(r.Context(), collection, chi.URLParam(r, "id"), req.Keywords)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(col, doc))
}

// Search handles POST /collections/{collection}/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Limit < 0 || req.Offset < 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "limit and offset must not be negative")
		return
	}

	col, err := s.collections.Get(r.Context(), collection)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	resp, err := s.search.Search(r.Context(), collection, searchuc.Request{
		Phrase:  req.Q,
		Options: req.Options,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, searchToResponse(col, resp))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.String(),
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrRecordNotFound,
		domain.ErrInvalidRecord,
		domain.ErrInvalidCollection,
		domain.ErrExtractionFailed,
		domain.ErrTextSearchNotSupported,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
