package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fashionfactory/store-backend/internal/models"
	"github.com/fashionfactory/store-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPreferredLanguage(t *testing.T) {
	cases := map[string]string{
		"":                        "vi",
		"en":                      "en",
		"en-US,en;q=0.9,vi;q=0.8": "en",
		"fr-FR, vi-VN;q=0.7":      "vi",
		"VI":                      "vi",
		"de, fr":                  "vi",
	}
	for header, want := range cases {
		assert.Equal(t, want, preferredLanguage(header), header)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rl := Per(3, time.Hour)
	rl.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.allow("10.0.0.1"))
	}
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "limits are per client")

	clock = clock.Add(20 * time.Minute)
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
}

func TestRateLimiterForgetsIdleVisitors(t *testing.T) {
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(rate.Limit(10), 10)
	rl.now = func() time.Time { return clock }

	rl.allow("10.0.0.1")
	clock = clock.Add(10 * time.Minute)
	rl.allow("10.0.0.2")

	rl.mtx.Lock()
	defer rl.mtx.Unlock()
	assert.NotContains(t, rl.visitors, "10.0.0.1")
	assert.Contains(t, rl.visitors, "10.0.0.2")
}

func TestRateLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/ping", NewRateLimiter(rate.Every(time.Hour), 1).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "TOO_MANY_REQUESTS")
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("secret", 1)

	r := gin.New()
	r.Use(I18nMiddleware())
	admin := r.Group("/admin", AuthRequired(jwt), AdminRequired())
	admin.GET("", func(c *gin.Context) {
		id, _ := c.Get("user_id")
		c.String(http.StatusOK, id.(string))
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, call("Bearer not-a-jwt").Code)

	userToken, err := jwt.Generate(uuid.New(), "lan", string(models.RoleUser))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call("Bearer "+userToken).Code)

	adminID := uuid.New()
	adminToken, err := jwt.Generate(adminID, "boss", string(models.RoleAdmin))
	require.NoError(t, err)
	w := call("bearer " + adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminID.String(), w.Body.String())
}

func TestCORSWildcard(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://shop.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
