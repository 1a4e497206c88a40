package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHandlerExposesScreeningCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	before := testutil.ToFloat64(ScreeningsFailed.WithLabelValues("extract"))
	ScreeningsStarted.Inc()
	ScreeningsFailed.WithLabelValues("extract").Inc()
	if got := testutil.ToFloat64(ScreeningsFailed.WithLabelValues("extract")); got != before+1 {
		t.Fatalf("expected failed counter to increase by 1, got %v -> %v", before, got)
	}

	r := gin.New()
	r.GET("/metrics", Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, name := range []string{"screener_screenings_started_total", "screener_screenings_failed_total"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in metrics output", name)
		}
	}
}
