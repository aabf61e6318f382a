package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounters(t *testing.T) {
	r := NewRecorder()

	r.ObservePipeline(3*time.Millisecond, 10, 240)
	r.ObservePipeline(time.Millisecond, 0, 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.pipelineRuns))

	r.ObserveDataset(731, 17379)
	assert.Equal(t, 17379.0, testutil.ToFloat64(r.datasetRows.WithLabelValues("hourly")))

	r.ObserveHTTP(http.MethodGet, "GET /api/dashboard", 200, time.Millisecond)
	r.ObserveHTTP(http.MethodGet, "GET /api/dashboard", 400, time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "GET /api/dashboard", "400")))

	r.ObserveExport("xlsx")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues("xlsx")))
}

func TestRecorderHandler(t *testing.T) {
	r := NewRecorder()
	r.ObservePipeline(time.Millisecond, 1, 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "bikeshare_pipeline_runs_total 1"), body)
	assert.Contains(t, body, "go_goroutines")
}
