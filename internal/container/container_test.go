package container

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"safetyportal/internal/config"
)

// PortalAPITestSuite прогоняет запросы через полностью собранный контейнер на in-memory БД
type PortalAPITestSuite struct {
	suite.Suite
	container  *Container
	adminToken string
}

func TestPortalAPITestSuite(t *testing.T) {
	suite.Run(t, new(PortalAPITestSuite))
}

func (s *PortalAPITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaults()
	cfg.DatabasePath = ":memory:"
	cfg.JWTSecret = "container-test-secret-value"
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "admin-password"
	cfg.LoginBurst = 20

	c, err := NewContainer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.Require().NoError(err)
	s.Require().NoError(c.Initialize())
	s.Require().NoError(c.EnsureAdmin(context.Background()))
	s.container = c

	s.adminToken = s.login("admin", "admin-password")
}

func (s *PortalAPITestSuite) TearDownTest() {
	s.Require().NoError(s.container.Shutdown())
}

func (s *PortalAPITestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.container.Router.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

func (s *PortalAPITestSuite) login(username, password string) string {
	w, body := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	token, _ := body["token"].(string)
	s.Require().NotEmpty(token)
	return token
}

func (s *PortalAPITestSuite) TestInitializeTwice() {
	s.Error(s.container.Initialize())
}

func (s *PortalAPITestSuite) TestDuplicateManufacturerIsRejected() {
	payload := map[string]any{
		"name":        "ABC Steel",
		"productType": "W-Beam",
		"price":       1200,
		"location":    "Delhi",
	}

	w, created := s.do(http.MethodPost, "/api/manufacturers", s.adminToken, payload)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("W-Beam", created["product_type"])

	payload["name"] = "ABC Steel  "
	w, conflict := s.do(http.MethodPost, "/api/manufacturers", s.adminToken, payload)
	s.Require().Equal(http.StatusConflict, w.Code, w.Body.String())
	s.Equal(true, conflict["duplicate"])
	s.Equal(true, conflict["error"])

	existing, ok := conflict["existing"].(map[string]any)
	s.Require().True(ok)
	s.Equal(created["id"], existing["id"])

	payload["price"] = 1500
	w, _ = s.do(http.MethodPost, "/api/manufacturers", s.adminToken, payload)
	s.Equal(http.StatusCreated, w.Code, "different price is a different offer")

	w, list := s.do(http.MethodGet, "/api/manufacturers", s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.EqualValues(2, list["count"])
}

func (s *PortalAPITestSuite) TestAuthentication() {
	w, _ := s.do(http.MethodGet, "/api/manufacturers", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/manufacturers", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "wrong-password"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/users", s.adminToken, map[string]string{
		"username": "clerk",
		"password": "clerk-password",
		"role":     "employee",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	clerk := s.login("clerk", "clerk-password")

	w, me := s.do(http.MethodGet, "/api/auth/me", clerk, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("clerk", me["username"])

	w, _ = s.do(http.MethodGet, "/api/users", clerk, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/orders/export", clerk, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *PortalAPITestSuite) TestExtractRejectsNonPDF() {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "order.pdf")
	s.Require().NoError(err)
	_, err = part.Write([]byte("this is a plain text file"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/extract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.adminToken)

	w := httptest.NewRecorder()
	s.container.Router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (s *PortalAPITestSuite) TestSimilarityCompare() {
	w, body := s.do(http.MethodPost, "/api/similarity/compare", s.adminToken, map[string]string{
		"a": "ABC  Steel Pvt Ltd",
		"b": "abc steel pvt ltd",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(1.0, body["similarity"])
	s.Equal(true, body["is_similar"])
}

func (s *PortalAPITestSuite) TestHealth() {
	w, body := s.do(http.MethodGet, "/health", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("healthy", body["status"])

	components, ok := body["components"].(map[string]any)
	s.Require().True(ok)
	s.Contains(components, "database")
	s.Contains(components, "reminders")
}

func TestNewContainer_RequiresConfig(t *testing.T) {
	_, err := NewContainer(nil, nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}
}
