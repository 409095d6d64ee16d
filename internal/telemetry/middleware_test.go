package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddlewareCountsByRoutePattern(t *testing.T) {
	router := chi.NewRouter()
	router.Use(MetricsMiddleware)
	router.Get("/slot/{id}/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	// chi отдаёт шаблон без завершающего слэша
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodGet, "/slot/{id}", "404"))

	for _, path := range []string{"/slot/1/", "/slot/2/"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	}

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(http.MethodGet, "/slot/{id}", "404"))
	assert.Equal(t, 2.0, after-before)
}
