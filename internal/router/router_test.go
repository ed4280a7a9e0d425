package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/time/rate"

	"github.com/fashionfactory/store-backend/internal/config"
	"github.com/fashionfactory/store-backend/internal/i18n"
	"github.com/fashionfactory/store-backend/internal/middleware"
	"github.com/fashionfactory/store-backend/internal/services"
)

type memoryMailer struct {
	mu   sync.Mutex
	sent []services.EmailMessage
}

func (m *memoryMailer) Send(_ context.Context, msg services.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *memoryMailer) lastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1].Text
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	mailer *memoryMailer
}

func (s *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	require.NoError(s.T(), i18n.Initialize())
}

func (s *APITestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{PublicURL: "http://api.test", UploadDir: s.T().TempDir()},
		Database:    config.DatabaseConfig{Driver: config.StoreDriverMemory},
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Email:       config.EmailConfig{FromEmail: "noreply@shop.test", FromName: "Fashion Factory"},
		Frontend:    config.FrontendConfig{BaseURL: "http://shop.test"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"*"}},
		Catalog: config.CatalogConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
			TopSellingMode:  config.TopSellingSample,
		},
		Admin: config.AdminConfig{Email: "admin@shop.test", Password: "Admin123"},
	}

	stores, err := MemoryStores(cfg.Admin)
	s.Require().NoError(err)

	open := middleware.NewRateLimiter(rate.Inf, 1)
	limits := middleware.RateLimits{
		General:        open,
		Login:          open,
		ForgotPassword: middleware.Per(3, time.Hour),
		ChangePassword: open,
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.mailer = &memoryMailer{}
	s.router, err = Initialize(stores, cfg, logger, Options{Mailer: s.mailer, RateLimits: &limits})
	s.Require().NoError(err)
}

func (s *APITestSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *APITestSuite) login(email, password string) string {
	w, env := s.do(http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var auth struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &auth))
	s.Require().NotEmpty(auth.Token)
	return auth.Token
}

func (s *APITestSuite) register(username, email string) string {
	w, _ := s.do(http.MethodPost, "/api/user/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "Secret123",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.login(email, "Secret123")
}

func (s *APITestSuite) TestHealth() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"status":"healthy"`)
	s.Contains(w.Body.String(), `"store":"memory"`)
}

func (s *APITestSuite) TestRegisterAndProfile() {
	token := s.register("lan_anh", "Lan@Example.com")

	w, env := s.do(http.MethodGet, "/api/user/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var user struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &user))
	s.Equal("lan@example.com", user.Email)
	s.Equal("USER", user.Role)
	s.NotContains(w.Body.String(), "password")
}

func (s *APITestSuite) TestRegisterValidation() {
	w, env := s.do(http.MethodPost, "/api/user/register", "", map[string]string{
		"username": "x",
		"email":    "not-an-email",
		"password": "weak",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("VALIDATION_ERROR", env.Error.Code)

	s.register("lan_anh", "lan@example.com")
	w, env = s.do(http.MethodPost, "/api/user/register", "", map[string]string{
		"username": "lan_other",
		"email":    "lan@example.com",
		"password": "Secret123",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.False(env.Success)
}

func (s *APITestSuite) TestLoginFailuresLookAlike() {
	s.register("lan_anh", "lan@example.com")

	wrongPassword, env1 := s.do(http.MethodPost, "/api/user/login", "", map[string]string{
		"email": "lan@example.com", "password": "Wrong123",
	})
	unknownEmail, env2 := s.do(http.MethodPost, "/api/user/login", "", map[string]string{
		"email": "ghost@example.com", "password": "Wrong123",
	})

	s.Equal(http.StatusUnauthorized, wrongPassword.Code)
	s.Equal(http.StatusUnauthorized, unknownEmail.Code)
	s.Require().NotNil(env1.Error)
	s.Require().NotNil(env2.Error)
	s.Equal(env1.Error.Message, env2.Error.Message)
}

func (s *APITestSuite) TestProductListing() {
	w, env := s.do(http.MethodGet, "/api/products?page=0&size=5&sortBy=price&sortDirection=asc", "", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(env.Success)

	var page struct {
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
		Pagination struct {
			Page       int   `json:"page"`
			TotalPages int   `json:"totalPages"`
			TotalItems int64 `json:"totalItems"`
		} `json:"pagination"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Len(page.Products, 5)
	s.Equal(1, page.Pagination.Page)
	s.Equal(2, page.Pagination.TotalPages)
	s.EqualValues(6, page.Pagination.TotalItems)
	s.Equal("6", w.Header().Get("X-Total-Count"))
}

func (s *APITestSuite) TestProductListingRejectsBadInput() {
	w, env := s.do(http.MethodGet, "/api/products?sortBy=colour", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Require().NotNil(env.Error)
	s.Contains(env.Error.Message, "colour")

	w, _ = s.do(http.MethodGet, "/api/products?page=abc", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestUnknownProduct() {
	w, _ := s.do(http.MethodGet, "/api/products/00000000-0000-0000-0000-000000000001", "", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/products/not-a-uuid", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestAdminRoutes() {
	w, _ := s.do(http.MethodGet, "/api/user/all", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	userToken := s.register("lan_anh", "lan@example.com")
	w, _ = s.do(http.MethodGet, "/api/user/all", userToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/categories", userToken, map[string]string{"name": "Váy"})
	s.Equal(http.StatusForbidden, w.Code)

	adminToken := s.login("admin@shop.test", "Admin123")
	w, env := s.do(http.MethodGet, "/api/user/all?limit=1", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.True(env.Success)
	s.Equal("2", w.Header().Get("X-Total-Count"))
}

func (s *APITestSuite) TestPasswordResetFlow() {
	s.register("lan_anh", "lan@example.com")

	w, _ := s.do(http.MethodPost, "/api/user/forgot-password", "", map[string]string{"email": "lan@example.com"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	match := regexp.MustCompile(`token=([0-9a-f]{64})`).FindStringSubmatch(s.mailer.lastText())
	s.Require().Len(match, 2)

	w, _ = s.do(http.MethodPost, "/api/user/reset-password", "", map[string]string{
		"token":           match[1],
		"password":        "Changed123",
		"confirmPassword": "Changed123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.login("lan@example.com", "Changed123")

	w, _ = s.do(http.MethodPost, "/api/user/reset-password", "", map[string]string{
		"token":           match[1],
		"password":        "Again1234",
		"confirmPassword": "Again1234",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestForgotPasswordRateLimited() {
	for i := 0; i < 3; i++ {
		w, _ := s.do(http.MethodPost, "/api/user/forgot-password", "", map[string]string{"email": "ghost@example.com"})
		s.Equal(http.StatusNotFound, w.Code)
	}

	w, env := s.do(http.MethodPost, "/api/user/forgot-password", "", map[string]string{"email": "ghost@example.com"})
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("TOO_MANY_REQUESTS", env.Error.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
