package content

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type TutorialHandler struct {
	repo *repository.Repository
}

func NewTutorialHandler(repo *repository.Repository) *TutorialHandler {
	return &TutorialHandler{repo: repo}
}

func (h *TutorialHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/tutorials")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type tutorialInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Category    string            `json:"category"`
	Difficulty  string            `json:"difficulty"`
	Duration    string            `json:"duration"`
	Topics      models.StringList `json:"topics"`
}

func (in *tutorialInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if in.Difficulty == "" {
		missing = append(missing, "difficulty")
	}
	if len(missing) > 0 {
		return pkg.ValidationError(missing)
	}
	if !models.Difficulty(in.Difficulty).Valid() {
		return pkg.BadRequest("invalid difficulty: " + in.Difficulty)
	}
	return nil
}

func (h *TutorialHandler) attachAuthors(c *gin.Context, tutorials []models.Tutorial) error {
	ids := make([]uuid.UUID, 0, len(tutorials))
	for i := range tutorials {
		ids = append(ids, tutorials[i].AuthorID)
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), ids)
	if err != nil {
		return err
	}
	for i := range tutorials {
		tutorials[i].Author = authors[tutorials[i].AuthorID]
	}
	return nil
}

func (h *TutorialHandler) List(c *gin.Context) {
	tutorials, err := h.repo.ListTutorials(c.Request.Context(), repository.ContentFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Sort:       c.Query("sort"),
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.attachAuthors(c, tutorials); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, tutorials, len(tutorials))
}

func (h *TutorialHandler) load(c *gin.Context) (*models.Tutorial, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("tutorial"))
		return nil, false
	}
	tutorial, err := h.repo.GetTutorial(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("tutorial"))
		return nil, false
	}
	return tutorial, true
}

func (h *TutorialHandler) Get(c *gin.Context) {
	tutorial, ok := h.load(c)
	if !ok {
		return
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), []uuid.UUID{tutorial.AuthorID})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	tutorial.Author = authors[tutorial.AuthorID]
	pkg.OK(c, tutorial)
}

func (h *TutorialHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanCreateHostGated(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in tutorialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := in.validate(); err != nil {
		pkg.Fail(c, err)
		return
	}

	tutorial := &models.Tutorial{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Category:    in.Category,
		Difficulty:  models.Difficulty(in.Difficulty),
		Duration:    in.Duration,
		Topics:      in.Topics,
		AuthorID:    caller.ID,
	}
	if err := h.repo.CreateTutorial(c.Request.Context(), tutorial); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, tutorial, "tutorial created successfully")
}

func (h *TutorialHandler) Update(c *gin.Context) {
	tutorial, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, tutorial.AuthorID, "tutorial"); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in tutorialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := in.validate(); err != nil {
		pkg.Fail(c, err)
		return
	}

	tutorial.Title = in.Title
	tutorial.Description = in.Description
	tutorial.Content = in.Content
	tutorial.Category = in.Category
	tutorial.Difficulty = models.Difficulty(in.Difficulty)
	tutorial.Duration = in.Duration
	tutorial.Topics = in.Topics

	if err := h.repo.SaveTutorial(c.Request.Context(), tutorial); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, tutorial, "tutorial updated successfully")
}

func (h *TutorialHandler) Delete(c *gin.Context) {
	tutorial, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, tutorial.AuthorID, "tutorial"); err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.repo.DeleteTutorial(c.Request.Context(), tutorial.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "tutorial deleted successfully")
}
