package utils

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
)

// IdentityResolver maps an authenticated email to the internal user id.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (uint, error)
}

// AuthMiddleware validates the bearer token and stores the resolved user id
// under ContextUserID for the handlers behind it.
func AuthMiddleware(tokens *JWTManager, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			return
		}

		tokenString, err := bearerToken(authHeader)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}

		claims, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		userID, err := users.ResolveIdentity(c.Request.Context(), claims.Email)
		if err != nil {
			log.Printf("auth: resolve identity %q: %v", claims.Email, err)
			abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

func bearerToken(authHeader string) (string, error) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("invalid token format")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
