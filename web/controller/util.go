// Package controller provides the HTTP handlers of the userhub API:
// session-based authentication and user management.
package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/logger"
	"userhub/web/entity"
	"userhub/web/service"
)

// getRemoteIp extracts the client IP from proxy headers or the remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	ip, _, _ := net.SplitHostPort(c.Request.RemoteAddr)
	return ip
}

// jsonResult writes a 200 AuthResult payload.
func jsonResult(c *gin.Context, success bool, message string, user *entity.UserSnapshot) {
	c.JSON(http.StatusOK, entity.AuthResult{
		Success: success,
		Message: message,
		User:    user,
	})
}

// jsonFailure maps an error onto the wire. Business failures become a
// success=false payload with a user-safe message; anything else is an
// infrastructure error and surfaces as 500 with a generic message.
func jsonFailure(c *gin.Context, err error) {
	if service.IsBusinessError(err) {
		jsonResult(c, false, businessMessage(err), nil)
		return
	}
	logger.Error("internal error:", err)
	c.JSON(http.StatusInternalServerError, entity.AuthResult{
		Success: false,
		Message: "Something went wrong. Please try again later.",
	})
}

// businessMessage picks the user-visible text for an expected failure.
// Credential failures of every kind share one generic message so responses
// cannot be used to probe which part was wrong or whether a user exists.
func businessMessage(err error) string {
	switch {
	case err == service.ErrInvalidCredentials, err == service.ErrAccountInactive:
		return "Invalid username or password"
	case err == service.ErrForbidden:
		return "Permission denied. Only admin users can perform this action."
	case err == service.ErrSuperuserImmutable:
		return "Admin accounts cannot be modified."
	case err == service.ErrUserNotFound:
		return "User not found."
	default:
		return err.Error()
	}
}
