package community

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
	"hackhive/internal/service"
)

type TeamHandler struct {
	repo *repository.Repository
	svc  *service.TeamService
}

func NewTeamHandler(repo *repository.Repository, svc *service.TeamService) *TeamHandler {
	return &TeamHandler{repo: repo, svc: svc}
}

func (h *TeamHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/teams")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/:id/join", h.Join)
	g.DELETE("/:id", h.Delete)
}

func (h *TeamHandler) List(c *gin.Context) {
	var hackathonID uuid.UUID
	if raw := c.Query("hackathonId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			pkg.Fail(c, pkg.BadRequest("invalid hackathonId"))
			return
		}
		hackathonID = id
	}

	teams, err := h.repo.ListTeams(c.Request.Context(), hackathonID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, teams, len(teams))
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("team"))
		return
	}
	team, err := h.repo.GetTeam(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("team"))
		return
	}
	pkg.OK(c, team)
}

func (h *TeamHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		MaxMembers  int    `json:"maxMembers"`
		HackathonID string `json:"hackathonId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if in.HackathonID == "" {
		missing = append(missing, "hackathonId")
	}
	if len(missing) > 0 {
		pkg.Fail(c, pkg.ValidationError(missing))
		return
	}
	hackathonID, err := uuid.Parse(in.HackathonID)
	if err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid hackathonId"))
		return
	}

	team := &models.Team{
		Name:        in.Name,
		Description: in.Description,
		MaxMembers:  in.MaxMembers,
		HackathonID: hackathonID,
	}
	created, err := h.svc.CreateTeam(c.Request.Context(), team, caller.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, created, "team created successfully")
}

func (h *TeamHandler) Join(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("team"))
		return
	}
	member, err := h.svc.JoinTeam(c.Request.Context(), id, caller.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, member, "joined team successfully")
}

func (h *TeamHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("team"))
		return
	}
	team, err := h.repo.GetTeam(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("team"))
		return
	}

	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, h.svc.LeaderID(team), "team"); err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.svc.DeleteTeam(c.Request.Context(), id); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "team deleted successfully")
}
