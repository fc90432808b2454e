package manufacturers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, field string, size int) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, "manufacturers.xlsx")
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImport_RejectsBeforeParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/import", NewHandler(nil, nil).Import)

	tests := []struct {
		name       string
		field      string
		size       int
		wantStatus int
	}{
		{"body larger than the multipart limit", "file", maxImportBytes + multipartOverhead + 1, http.StatusRequestEntityTooLarge},
		{"file over limit within multipart slack", "file", maxImportBytes + 1, http.StatusRequestEntityTooLarge},
		{"missing file field", "", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.field, tt.size)
			req := httptest.NewRequest(http.MethodPost, "/import", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
