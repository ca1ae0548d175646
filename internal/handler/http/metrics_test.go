package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_NormalizesPath(t *testing.T) {
	const label = "/v1/announcements/:id/publish"
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, label, "409"))

	h := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	for _, id := range []string{
		"3f2504e0-4f89-11d3-9a0c-0305e82c3301",
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
	} {
		req := httptest.NewRequest(http.MethodPost, "/v1/announcements/"+id+"/publish", nil)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, label, "409"))
	assert.Equal(t, before+2, after)
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "http_requests_total"))
}
