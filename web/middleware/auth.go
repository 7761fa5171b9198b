package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/database/model"
	"userhub/logger"
	"userhub/web/session"
)

const contextUserKey = "login_user"

// SessionAuth resolves the session cookie to a user record and stores it in
// the request context. A missing, unknown or expired session leaves the
// request anonymous; it never fails the request by itself. A session bound
// to a since-deactivated or deleted user is treated as anonymous too.
func SessionAuth(users userResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := session.GetLoginUserId(c); ok {
			user, err := users.GetUserById(id)
			if err == nil && user.IsActive {
				c.Set(contextUserKey, user)
			} else if err != nil {
				logger.Debugf("session user %d not resolvable: %v", id, err)
			}
		}
		c.Next()
	}
}

type userResolver interface {
	GetUserById(id int) (*model.User, error)
}

// CurrentUser returns the authenticated user for the request, if any.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}

// AuthRequired rejects anonymous requests with 401. Authentication is
// checked strictly before any role check runs.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized. Please log in to access this resource.",
			})
			return
		}
		c.Next()
	}
}

// RoleRequired rejects authenticated callers below the given role with 403.
// Mount after AuthRequired.
func RoleRequired(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !user.Role.AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Permission denied.",
			})
			return
		}
		c.Next()
	}
}
