package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/davelara/shopper-cart/internal/platform/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		ReadToken:  "read-token",
		AdminToken: "admin-token",
		JWTSecret:  "unit-test-secret",
	}
}

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}

// newProtectedRouter exposes one authenticated route and one admin route and
// echoes the resolved identity.
func newProtectedRouter(m *Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authed := router.Group("/", m.RequireAuth())
	authed.GET("/me", func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": identity.UserID, "isAdmin": identity.IsAdmin})
	})
	authed.GET("/admin", m.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMiddleware_RequireAuth(t *testing.T) {
	cfg := testAuthConfig()
	router := newProtectedRouter(NewMiddleware(cfg))

	t.Run("Missing Authorization header is rejected", func(t *testing.T) {
		w := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed header is rejected", func(t *testing.T) {
		w := doRequest(router, "/me", "Token abc")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unknown token is rejected", func(t *testing.T) {
		w := doRequest(router, "/me", "Bearer not-a-real-token")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Read token resolves to the shared api client", func(t *testing.T) {
		w := doRequest(router, "/me", "Bearer read-token")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"api-client"`)
		assert.Contains(t, w.Body.String(), `"isAdmin":false`)
	})

	t.Run("Admin token resolves with admin rights", func(t *testing.T) {
		w := doRequest(router, "/me", "Bearer admin-token")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"api-admin"`)
		assert.Contains(t, w.Body.String(), `"isAdmin":true`)
	})

	t.Run("Valid JWT resolves the user identity", func(t *testing.T) {
		token := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
			"user_id":  "u1",
			"email":    "user@example.com",
			"is_admin": false,
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"userId":"u1"`)
	})

	t.Run("JWT signed with a different secret is rejected", func(t *testing.T) {
		token := signTestToken(t, "some-other-secret", jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired JWT is rejected", func(t *testing.T) {
		token := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("JWT without a user id is rejected", func(t *testing.T) {
		token := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
			"email": "user@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "/me", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMiddleware_RequireAdmin(t *testing.T) {
	cfg := testAuthConfig()
	router := newProtectedRouter(NewMiddleware(cfg))

	t.Run("Admin token passes", func(t *testing.T) {
		w := doRequest(router, "/admin", "Bearer admin-token")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Read token is forbidden", func(t *testing.T) {
		w := doRequest(router, "/admin", "Bearer read-token")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin JWT passes", func(t *testing.T) {
		token := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
			"user_id":  "u1",
			"is_admin": true,
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Regular user JWT is forbidden", func(t *testing.T) {
		token := signTestToken(t, cfg.JWTSecret, jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		w := doRequest(router, "/admin", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
