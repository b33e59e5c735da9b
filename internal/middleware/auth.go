package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agenda/internal/config"
	"github.com/BruksfildServices01/agenda/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Falta el encabezado Authorization.")
			return
		}
		if authenticate(c, cfg) {
			c.Next()
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token,
// so handlers can tell staff from anonymous callers with ActorID.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if authenticate(c, cfg) {
			c.Next()
		}
	}
}

// authenticate validates the bearer token and stores the caller in the
// context. On failure it has already answered 401.
func authenticate(c *gin.Context, cfg *config.Config) bool {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Unauthorized(c, "invalid_authorization_header", "Se esperaba un token Bearer.")
		return false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		httperr.Unauthorized(c, "invalid_token", "Token inválido o expirado.")
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
		return false
	}

	userID, ok := claims["sub"].(float64)
	role, _ := claims["role"].(string)
	if !ok || userID <= 0 {
		httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
		return false
	}

	c.Set(ContextUserID, uint(userID))
	c.Set(ContextUserRole, role)
	return true
}

// ActorID returns the authenticated staff id, or nil on public routes.
func ActorID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
