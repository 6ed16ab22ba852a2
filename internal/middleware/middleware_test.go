// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/i18n"
	"github.com/autosalvage/storefront/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(called *bool, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	handler := func(c *gin.Context) {
		*called = true
		c.String(http.StatusOK, "ok")
	}
	r.GET("/api/products", handler)
	r.POST("/api/products", handler)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSBlocksUnknownOriginBeforeHandler(t *testing.T) {
	require.NoError(t, i18n.Initialize())

	var called bool
	r := newRouter(&called, CORS(config.CORSConfig{AllowedOrigins: []string{"https://autosalvage.autos"}}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := serve(r, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "Not allowed by CORS")
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	var called bool
	r := newRouter(&called, CORS(config.CORSConfig{AllowedOrigins: []string{"https://autosalvage.autos"}}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://autosalvage.autos")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, "https://autosalvage.autos", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowsRequestsWithoutOrigin(t *testing.T) {
	var called bool
	r := newRouter(&called, CORS(config.CORSConfig{AllowedOrigins: []string{"https://autosalvage.autos"}}))

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestCORSAllowAllOrigins(t *testing.T) {
	var called bool
	r := newRouter(&called, CORS(config.CORSConfig{AllowAllOrigins: true}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "https://anything.example")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://anything.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	var called bool
	r := newRouter(&called, CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestAdminRequiredEnforced(t *testing.T) {
	require.NoError(t, i18n.Initialize())
	utils.SetJWTSecret("middleware-test-secret")

	var called bool
	r := newRouter(&called, AdminRequired(true))

	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/products", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = serve(r, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)

	token, err := utils.GenerateAdminToken("admin", time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestAdminRequiredOpenMode(t *testing.T) {
	var called bool
	r := newRouter(&called, AdminRequired(false))

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRequestID(t *testing.T) {
	var called bool
	r := newRouter(&called, RequestID())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("X-Request-ID", "from-proxy")
	w = serve(r, req)
	assert.Equal(t, "from-proxy", w.Header().Get("X-Request-ID"))
}

func TestPreferredLanguage(t *testing.T) {
	require.NoError(t, i18n.Initialize())

	assert.Equal(t, "fr", preferredLanguage("fr-FR,fr;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", preferredLanguage("en-GB"))
	assert.Equal(t, "fr", preferredLanguage("de-DE,fr;q=0.5"))
	assert.Equal(t, "en", preferredLanguage("ja"))
	assert.Equal(t, "en", preferredLanguage(""))
}
