package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/tickets/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/tickets/:id", "204"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tickets/abc", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/tickets/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestLedgerCounters(t *testing.T) {
	before := testutil.ToFloat64(entriesComputed.WithLabelValues("3tod"))
	RecordEntryComputed("3tod")
	assert.Equal(t, before+1, testutil.ToFloat64(entriesComputed.WithLabelValues("3tod")))

	before = testutil.ToFloat64(validationErrors.WithLabelValues("unknown"))
	RecordValidationError("")
	assert.Equal(t, before+1, testutil.ToFloat64(validationErrors.WithLabelValues("unknown")))

	before = testutil.ToFloat64(ceilingWarnings)
	RecordCeilingWarning()
	assert.Equal(t, before+1, testutil.ToFloat64(ceilingWarnings))
}

func TestHandler_ExposesLedgerMetrics(t *testing.T) {
	RecordSettlement(true)
	ObserveSummary(2 * time.Millisecond)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "bookie_ledger_settlements_total"))
	assert.True(t, strings.Contains(body, "bookie_ledger_summary_duration_seconds"))
}
