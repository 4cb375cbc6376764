package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/deeshop/internal/domain/errors"
	"github.com/polkiloo/deeshop/internal/domain/model"
	pkgAuth "github.com/polkiloo/deeshop/internal/pkg/auth"
)

const (
	// PrincipalContextKey is a gin context key for the authenticated model.Principal.
	PrincipalContextKey = "principal"
	authCookieName      = "deeshop_token"
)

// SessionResolver turns a session token into the account behind it.
type SessionResolver interface {
	ParseToken(token string) (int64, error)
	CurrentUser(ctx context.Context, userID int64) (*model.User, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortMessage(c, http.StatusUnauthorized, "Not authorized, please login")
			return
		}

		userID, err := sessions.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abortMessage(c, http.StatusUnauthorized, "Not authorized, please login")
				return
			}
			_ = c.Error(err)
			abortMessage(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		user, err := sessions.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abortMessage(c, http.StatusUnauthorized, "User not found")
				return
			}
			_ = c.Error(err)
			abortMessage(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(PrincipalContextKey, user.Principal())
		c.Next()
	}
}

// AdminOnly must run after AuthRequired.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			abortMessage(c, http.StatusUnauthorized, "Not authorized, please login")
			return
		}
		if !principal.IsAdmin() {
			abortMessage(c, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		c.Next()
	}
}

// Principal returns the caller stored by AuthRequired.
func Principal(c *gin.Context) (model.Principal, bool) {
	val, ok := c.Get(PrincipalContextKey)
	if !ok {
		return model.Principal{}, false
	}
	p, ok := val.(model.Principal)
	return p, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, 86400, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

func abortMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
