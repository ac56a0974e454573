package middleware

import (
	"errors"
	"net/http"
	"strings"

	"food-ordering-api/auth"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

const principalKey = "principal"

// SessionToken extracts the token from the session cookie or an
// Authorization: Bearer header.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Sessions resolves the request's session token to a principal and attaches
// it to the context. It never aborts: public routes run with no principal,
// and the gates below decide what that means.
func Sessions(store auth.Store, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		userID, ok, err := store.Resolve(c.Request.Context(), token)
		if err != nil || !ok {
			c.Next()
			return
		}
		user, err := models.FindUser(db, userID)
		if err != nil {
			// Session survives the user; treat as unauthenticated.
			c.Next()
			return
		}
		c.Set(principalKey, auth.NewPrincipal(user))
		c.Next()
	}
}

// CurrentPrincipal returns the request's principal, or nil when the
// request is unauthenticated.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	val, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	return val.(*auth.Principal)
}

// AuthRequired aborts with 401 when no principal is attached.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You are not logged in"})
			return
		}
		c.Next()
	}
}

// RoleRequired gates the route on an exact role match: 401 without a
// principal, 403 on any other role.
func RoleRequired(required models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.Authorize(CurrentPrincipal(c), required)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, models.ErrNotAuthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You are not logged in"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access forbidden: insufficient permissions"})
		}
	}
}
