package content

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type ResourceHandler struct {
	repo *repository.Repository
}

func NewResourceHandler(repo *repository.Repository) *ResourceHandler {
	return &ResourceHandler{repo: repo}
}

func (h *ResourceHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/resources")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type resourceInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	URL         string            `json:"url"`
	Type        string            `json:"type"`
	Category    string            `json:"category"`
	Tags        models.StringList `json:"tags"`
}

func (in *resourceInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return pkg.ValidationError(missing)
	}
	return nil
}

func (h *ResourceHandler) List(c *gin.Context) {
	resources, err := h.repo.ListResources(c.Request.Context(), repository.ContentFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(resources))
	for i := range resources {
		ids = append(ids, resources[i].AuthorID)
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), ids)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	for i := range resources {
		resources[i].Author = authors[resources[i].AuthorID]
	}
	pkg.List(c, resources, len(resources))
}

func (h *ResourceHandler) load(c *gin.Context) (*models.LearningResource, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("resource"))
		return nil, false
	}
	resource, err := h.repo.GetResource(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("resource"))
		return nil, false
	}
	return resource, true
}

func (h *ResourceHandler) Get(c *gin.Context) {
	resource, ok := h.load(c)
	if !ok {
		return
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), []uuid.UUID{resource.AuthorID})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	resource.Author = authors[resource.AuthorID]
	pkg.OK(c, resource)
}

func (h *ResourceHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanCreateHostGated(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in resourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := in.validate(); err != nil {
		pkg.Fail(c, err)
		return
	}

	resource := &models.LearningResource{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
		Type:        in.Type,
		Category:    in.Category,
		Tags:        in.Tags,
		AuthorID:    caller.ID,
	}
	if err := h.repo.CreateResource(c.Request.Context(), resource); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, resource, "resource created successfully")
}

func (h *ResourceHandler) Update(c *gin.Context) {
	resource, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, resource.AuthorID, "resource"); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in resourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := in.validate(); err != nil {
		pkg.Fail(c, err)
		return
	}

	resource.Title = in.Title
	resource.Description = in.Description
	resource.URL = in.URL
	resource.Type = in.Type
	resource.Category = in.Category
	resource.Tags = in.Tags

	if err := h.repo.SaveResource(c.Request.Context(), resource); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, resource, "resource updated successfully")
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	resource, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, resource.AuthorID, "resource"); err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.repo.DeleteResource(c.Request.Context(), resource.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "resource deleted successfully")
}
