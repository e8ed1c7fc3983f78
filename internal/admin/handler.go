package admin

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/notify"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type Handler struct {
	repo   *repository.Repository
	mailer notify.MailService
}

func NewHandler(repo *repository.Repository, mailer notify.MailService) *Handler {
	return &Handler{repo: repo, mailer: mailer}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/admin")
	g.GET("/users", h.ListUsers)
	g.POST("/users/:id/approve-host", h.ApproveHost)
	g.POST("/users/:id/promote", h.Promote)
	g.POST("/users/:id/deactivate", h.Deactivate)
	g.POST("/users/:id/activate", h.Activate)
}

func (h *Handler) requireAdmin(c *gin.Context) bool {
	if err := pkg.IsAdmin(pkg.CallerFrom(c)); err != nil {
		pkg.Fail(c, err)
		return false
	}
	return true
}

func (h *Handler) loadUser(c *gin.Context) (*models.User, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("user"))
		return nil, false
	}
	user, err := h.repo.GetUserByID(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("user"))
		return nil, false
	}
	return user, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, users, len(users))
}

func (h *Handler) ApproveHost(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleHost {
		pkg.Fail(c, pkg.BadRequest("user has not applied for host access"))
		return
	}

	user.IsHostApproved = true
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}

	if h.mailer != nil {
		if err := h.mailer.SendHostApproval(user.Email, user.Name); err != nil {
			log.Printf("host approval mail to %s failed: %v", user.Email, err)
		}
	}
	pkg.Updated(c, user, "host access approved")
}

func (h *Handler) Promote(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.loadUser(c)
	if !ok {
		return
	}

	var in struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !models.Role(in.Role).Valid() {
		pkg.Fail(c, pkg.BadRequest("role must be one of USER, HOST, ADMIN"))
		return
	}

	user.Role = models.Role(in.Role)
	if user.Role == models.RoleHost {
		user.IsHostApproved = true
	}
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, user, "role updated")
}

func (h *Handler) Deactivate(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	user.IsActive = false
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, user, "account deactivated")
}

func (h *Handler) Activate(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	user, ok := h.loadUser(c)
	if !ok {
		return
	}
	user.IsActive = true
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, user, "account activated")
}
