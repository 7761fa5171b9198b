// Package session wraps gin sessions for the userhub login flow. Sessions
// hold only the bound user id; handlers resolve the full user record from
// the database on each request.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"userhub/config"
)

const loginUserId = "LOGIN_USER_ID"

func cookieOptions(maxAge int) sessions.Options {
	return sessions.Options{
		Path:     config.GetBasePath(),
		MaxAge:   maxAge,
		Secure:   config.GetSessionCookieSecure(),
		HttpOnly: true,
		SameSite: config.GetSessionCookieSameSite(),
	}
}

// SetLoginUser binds the authenticated user id to a session with the given
// lifetime in seconds and persists it.
func SetLoginUser(c *gin.Context, userId int, maxAge int) error {
	s := sessions.Default(c)
	s.Options(cookieOptions(maxAge))
	s.Set(loginUserId, userId)
	return s.Save()
}

// GetLoginUserId returns the user id bound to the session, if any.
func GetLoginUserId(c *gin.Context) (int, bool) {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(int); ok {
			return id, true
		}
	}
	return 0, false
}

// IsLogin reports whether the request carries an authenticated session.
func IsLogin(c *gin.Context) bool {
	_, ok := GetLoginUserId(c)
	return ok
}

// ClearSession destroys the session server-side and expires the cookie.
// Safe to call on an anonymous session.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(cookieOptions(-1))
	return s.Save()
}
