package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetyportal/database"
	"safetyportal/internal/domain/duplicates"
	apperrors "safetyportal/server/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindEntity_AcceptsCamelCaseKeys(t *testing.T) {
	var dst struct {
		Name        string  `json:"name"`
		ProductType string  `json:"product_type"`
		Price       float64 `json:"price"`
	}

	c := newJSONContext(`{"name":"ABC Steel","productType":"W-Beam","price":1200.5,"unknown":"dropped"}`)
	require.NoError(t, BindEntity(c, database.Manufacturers, &dst))

	assert.Equal(t, "ABC Steel", dst.Name)
	assert.Equal(t, "W-Beam", dst.ProductType)
	assert.Equal(t, 1200.5, dst.Price)
}

func TestBindEntity_Dates(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *time.Time
		wantErr bool
	}{
		{"date only", `"2024-05-10"`, ptr(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)), false},
		{"datetime-local", `"2024-05-10T14:30"`, ptr(time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)), false},
		{"rfc3339", `"2024-05-10T14:30:00Z"`, ptr(time.Date(2024, 5, 10, 14, 30, 0, 0, time.UTC)), false},
		{"empty string", `""`, nil, false},
		{"garbage", `"next tuesday"`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst struct {
				DispatchDate *time.Time `json:"dispatch_date"`
			}

			c := newJSONContext(`{"dispatchDate":` + tt.value + `}`)
			err := BindEntity(c, database.Orders, &dst)
			if tt.wantErr {
				var appErr *apperrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
				return
			}

			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, dst.DispatchDate)
			} else {
				require.NotNil(t, dst.DispatchDate)
				assert.True(t, tt.want.Equal(*dst.DispatchDate))
			}
		})
	}
}

func TestBindEntity_InvalidJSON(t *testing.T) {
	var dst map[string]any
	err := BindEntity(newJSONContext(`{"name":`), database.Manufacturers, &dst)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
}

func TestToAppError(t *testing.T) {
	errNotFound := errors.New("manufacturer not found")
	rules := Rules(http.StatusNotFound, errNotFound)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"duplicate", &duplicates.ConflictError{Entity: "manufacturer", ExistingID: 3, Existing: map[string]any{"id": 3}}, http.StatusConflict, "existing"},
		{"check failed", duplicates.ErrCheckFailed, http.StatusServiceUnavailable, ""},
		{"rule", errors.Join(errNotFound, errors.New("sql: no rows")), http.StatusNotFound, ""},
		{"app error passthrough", apperrors.NewValidationError("bad", nil), http.StatusBadRequest, ""},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var appErr *apperrors.AppError
			require.ErrorAs(t, ToAppError(tt.err, rules...), &appErr)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode())
			if tt.wantDetail != "" {
				assert.Contains(t, appErr.ResponseDetails(), tt.wantDetail)
				assert.Equal(t, true, appErr.ResponseDetails()["duplicate"])
			}
		})
	}
}

func TestParseListFilter(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?search=+steel+&limit=5000&offset=20", nil)

	filter := ParseListFilter(c)
	assert.Equal(t, "steel", filter.Search)
	assert.Equal(t, MaxListLimit, filter.Limit)
	assert.Equal(t, 20, filter.Offset)

	c.Request = httptest.NewRequest(http.MethodGet, "/?limit=-1&offset=x", nil)
	filter = ParseListFilter(c)
	assert.Equal(t, DefaultListLimit, filter.Limit)
	assert.Zero(t, filter.Offset)
}

func ptr[T any](v T) *T { return &v }
