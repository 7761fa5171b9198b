package controller

import (
	"github.com/gin-gonic/gin"

	"userhub/config"
	"userhub/database/model"
	"userhub/logger"
	"userhub/web/entity"
	"userhub/web/middleware"
	"userhub/web/service"
	"userhub/web/session"
)

// LoginForm is the login request body. The two-factor code is only
// meaningful when TOTP is configured server-side.
type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// AuthController handles login, logout and the current-user query.
type AuthController struct {
	userService  service.UserService
	auditService service.AuditLogService
}

// NewAuthController creates the controller and registers its routes.
// None of these routes require an authenticated caller: login is the way
// in, logout is idempotent for anonymous sessions and me reports anonymity
// instead of failing.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	auth := g.Group("/auth")
	auth.POST("/login", middleware.RateLimit(middleware.DefaultRateLimitConfig(config.GetLoginRateLimit())), a.login)
	auth.POST("/logout", a.logout)
	auth.GET("/me", a.me)
}

// login verifies credentials and establishes a session. All credential
// failure modes return the same generic message; the audit log keeps the
// real reason.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonResult(c, false, "Invalid form data", nil)
		return
	}
	if form.Username == "" || form.Password == "" {
		jsonResult(c, false, "Invalid username or password", nil)
		return
	}

	user, err := a.userService.CheckUser(form.Username, form.Password, form.TwoFactorCode)
	if err != nil {
		logger.Warningf("failed login for %q from %s: %v", form.Username, getRemoteIp(c), err)
		a.auditService.LogAction(0, form.Username, model.AuditActionLoginFailed, "session", 0,
			getRemoteIp(c), c.Request.UserAgent(), map[string]any{"reason": err.Error()})
		jsonFailure(c, err)
		return
	}

	if err := session.SetLoginUser(c, user.Id, config.GetSessionMaxAge()); err != nil {
		jsonFailure(c, err)
		return
	}

	logger.Infof("%s logged in from %s", user.Username, getRemoteIp(c))
	a.auditService.LogAction(user.Id, user.Username, model.AuditActionLogin, "session", 0,
		getRemoteIp(c), c.Request.UserAgent(), nil)
	jsonResult(c, true, "Login successful", entity.Snapshot(user))
}

// logout destroys the current session. Idempotent: an anonymous caller
// still gets success=true.
func (a *AuthController) logout(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		logger.Infof("%s logged out", user.Username)
		a.auditService.LogAction(user.Id, user.Username, model.AuditActionLogout, "session", 0,
			getRemoteIp(c), c.Request.UserAgent(), nil)
	}
	if err := session.ClearSession(c); err != nil {
		jsonFailure(c, err)
		return
	}
	jsonResult(c, true, "Logout successful", nil)
}

// me returns the current user snapshot, or no user for anonymous callers.
func (a *AuthController) me(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		jsonResult(c, true, "", entity.Snapshot(user))
		return
	}
	jsonResult(c, true, "", nil)
}
