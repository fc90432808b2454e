package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_RegistersOnce(t *testing.T) {
	m := NewMetrics()
	require.Same(t, m, NewMetrics())

	before := testutil.ToFloat64(m.DuplicatesRejectedTotal.WithLabelValues("manufacturer"))
	m.DuplicateFound("manufacturer")
	assert.Equal(t, before+1, testutil.ToFloat64(m.DuplicatesRejectedTotal.WithLabelValues("manufacturer")))

	before = testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	m.ObserveHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealthChecker(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		db        Pinger
		component HealthStatus
		want      int
		status    HealthStatus
	}{
		{"healthy", pinger{}, HealthStatusHealthy, http.StatusOK, HealthStatusHealthy},
		{"degraded worker", pinger{}, HealthStatusDegraded, http.StatusOK, HealthStatusDegraded},
		{"database down", pinger{err: errors.New("disk full")}, HealthStatusHealthy, http.StatusServiceUnavailable, HealthStatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewHealthChecker("test", tt.db)
			hc.RegisterComponent("reminders", func(context.Context) ComponentHealth {
				return ComponentHealth{Name: "reminders", Status: tt.component}
			})

			assert.Equal(t, tt.status, hc.Check(context.Background()).Status)

			router := gin.New()
			router.GET("/health", hc.GinHandler())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
