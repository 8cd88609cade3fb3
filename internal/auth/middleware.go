package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/davelara/shopper-cart/internal/platform/config"
)

const identityKey = "auth.identity"

var errInvalidToken = errors.New("invalid token")

// Identity is the resolved caller of a request: either one of the two
// shared-secret API tokens or a user from a JWT.
type Identity struct {
	UserID  string
	Email   string
	IsAdmin bool
}

type Middleware struct {
	cfg config.AuthConfig
}

func NewMiddleware(cfg config.AuthConfig) *Middleware {
	return &Middleware{cfg: cfg}
}

// RequireAuth resolves the bearer token and aborts with 401 when it is
// missing or invalid. Static tokens are checked before JWT parsing.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		identity, err := m.resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

func (m *Middleware) resolve(token string) (Identity, error) {
	if m.cfg.AdminToken != "" && token == m.cfg.AdminToken {
		return Identity{UserID: "api-admin", IsAdmin: true}, nil
	}
	if m.cfg.ReadToken != "" && token == m.cfg.ReadToken {
		return Identity{UserID: "api-client"}, nil
	}
	return m.parseJWT(token)
}

func (m *Middleware) parseJWT(token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(m.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, errInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errInvalidToken
	}

	identity := Identity{}
	if userID, ok := claims["user_id"].(string); ok {
		identity.UserID = userID
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		identity.IsAdmin = isAdmin
	}
	if identity.UserID == "" {
		return Identity{}, errInvalidToken
	}
	return identity, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
