package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"userhub/database/model"
	"userhub/web/entity"
	"userhub/web/middleware"
	"userhub/web/service"
)

// UserAdminController exposes the user-management operations. Every route
// requires an authenticated staff-level caller; the service layer enforces
// the finer thresholds (admin creation, admin immutability).
type UserAdminController struct {
	svc          service.UserAdminService
	auditService service.AuditLogService
}

// NewUserAdminController creates the controller and registers its routes.
func NewUserAdminController(g *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(model.RoleStaff))
	admin.GET("/users", a.list)
	admin.POST("/users", a.register)
	admin.PATCH("/users/:id", a.update)
}

// list returns all users except admin accounts.
func (a *UserAdminController) list(c *gin.Context) {
	users, err := a.svc.ListUsers()
	if err != nil {
		jsonFailure(c, err)
		return
	}
	snapshots := make([]*entity.UserSnapshot, 0, len(users))
	for _, u := range users {
		snapshots = append(snapshots, entity.Snapshot(u))
	}
	c.JSON(http.StatusOK, entity.UserList{Success: true, Users: snapshots})
}

func (a *UserAdminController) register(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonResult(c, false, "Invalid form data", nil)
		return
	}

	user, err := a.svc.Register(caller, input)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	a.auditService.LogAction(caller.Id, caller.Username, model.AuditActionRegister, "user", user.Id,
		getRemoteIp(c), c.Request.UserAgent(), map[string]any{"username": user.Username, "role": string(user.Role)})
	jsonResult(c, true, "User '"+user.Username+"' registered successfully", entity.Snapshot(user))
}

func (a *UserAdminController) update(c *gin.Context) {
	caller, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		jsonResult(c, false, "User not found.", nil)
		return
	}

	var input service.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonResult(c, false, "Invalid form data", nil)
		return
	}

	user, err := a.svc.UpdateUser(caller, id, input)
	if err != nil {
		jsonFailure(c, err)
		return
	}

	a.auditService.LogAction(caller.Id, caller.Username, model.AuditActionUpdateUser, "user", user.Id,
		getRemoteIp(c), c.Request.UserAgent(), nil)
	jsonResult(c, true, "User updated successfully", entity.Snapshot(user))
}
