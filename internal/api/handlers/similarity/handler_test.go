package similarity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyportal/normalization/algorithms"
)

func setupRouter(threshold float64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/compare", NewHandler(threshold).Compare)
	return router
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantStatus    int
		wantSimilar   bool
		wantThreshold float64
	}{
		{"identical after normalization", `{"a":"ABC  Steel","b":"abc steel"}`, http.StatusOK, true, 0.85},
		{"score must exceed threshold", `{"a":"ABC Steel","b":"abc steel","threshold":1}`, http.StatusOK, false, 1},
		{"threshold out of range", `{"a":"x","b":"y","threshold":1.5}`, http.StatusBadRequest, false, 0},
		{"invalid json", `{"a":`, http.StatusBadRequest, false, 0},
	}

	router := setupRouter(0.85)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/compare", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp CompareResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 1.0, resp.Similarity)
			assert.Equal(t, tt.wantSimilar, resp.IsSimilar)
			assert.Equal(t, tt.wantThreshold, resp.Threshold)
			assert.Equal(t, "abc steel", resp.NormalizedA)
		})
	}
}

func TestNewHandler_InvalidThresholdFallsBack(t *testing.T) {
	assert.Equal(t, algorithms.DefaultDuplicateThreshold, NewHandler(0).threshold)
	assert.Equal(t, algorithms.DefaultDuplicateThreshold, NewHandler(2).threshold)
	assert.Equal(t, 0.9, NewHandler(0.9).threshold)
}
