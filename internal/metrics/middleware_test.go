package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/collections/{collection}/records/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/collections/books/records/"+id, http.NoBody)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rr.Code)
		}
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(
		http.MethodGet, "/collections/{collection}/records/{id}", "200"))
	if val < 2 {
		t.Errorf("expected both requests under one route label, got %f", val)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())

	r.Post("/collections/{collection}/search", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})
	r.Put("/collections/{collection}/records/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	r.Delete("/collections/{collection}/records/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusInternalServerError)
	})

	tests := []struct {
		method  string
		path    string
		pattern string
		status  string
	}{
		{http.MethodPost, "/collections/books/search", "/collections/{collection}/search", "200"},
		{http.MethodPut, "/collections/books/records/1", "/collections/{collection}/records/{id}", "502"},
		{http.MethodDelete, "/collections/books/records/1", "/collections/{collection}/records/{id}", "404"},
	}

	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, http.NoBody)
			r.ServeHTTP(httptest.NewRecorder(), req)

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.pattern, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total{%s %s %s} >= 1, got %f", tc.method, tc.pattern, tc.status, val)
			}
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {})

	for _, path := range []string{"/nope/1", "/nope/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, routeUnmatched, "404"))
	if val < 2 {
		t.Errorf("expected unmatched requests under one label, got %f", val)
	}
	if v := testutil.ToFloat64(httpInFlight); v != 0 {
		t.Errorf("requests_in_flight = %f after requests completed", v)
	}
}

func TestRouteLabel_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", http.NoBody)
	if got := routeLabel(req); got != routeUnmatched {
		t.Errorf("routeLabel() = %q, want %q", got, routeUnmatched)
	}
}

func TestRegisterHTTPMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()
}

func TestRegisterExtractionMetrics_Idempotent(t *testing.T) {
	RegisterExtractionMetrics()
	RegisterExtractionMetrics()

	ExtractionRequestsTotal.WithLabelValues("term", "success").Inc()
	if v := testutil.ToFloat64(ExtractionRequestsTotal.WithLabelValues("term", "success")); v < 1 {
		t.Errorf("extraction_requests_total = %f", v)
	}
}
