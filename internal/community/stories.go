package community

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type StoryHandler struct {
	repo *repository.Repository
}

func NewStoryHandler(repo *repository.Repository) *StoryHandler {
	return &StoryHandler{repo: repo}
}

func (h *StoryHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/success-stories")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/like", h.Like)

	api.GET("/leaderboard", h.Leaderboard)
}

func (h *StoryHandler) List(c *gin.Context) {
	stories, err := h.repo.ListStories(c.Request.Context(), c.Query("search"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	authorIDs := make([]uuid.UUID, 0, len(stories))
	for i := range stories {
		authorIDs = append(authorIDs, stories[i].AuthorID)
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), authorIDs)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	for i := range stories {
		stories[i].Author = authors[stories[i].AuthorID]
	}
	pkg.List(c, stories, len(stories))
}

func (h *StoryHandler) load(c *gin.Context) (*models.SuccessStory, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("success story"))
		return nil, false
	}
	story, err := h.repo.GetStory(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("success story"))
		return nil, false
	}
	return story, true
}

func (h *StoryHandler) Get(c *gin.Context) {
	story, ok := h.load(c)
	if !ok {
		return
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), []uuid.UUID{story.AuthorID})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	story.Author = authors[story.AuthorID]
	pkg.OK(c, story)
}

func (h *StoryHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Outcome string `json:"outcome"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		pkg.Fail(c, pkg.ValidationError(missing))
		return
	}

	story := &models.SuccessStory{
		Title:    in.Title,
		Content:  in.Content,
		Outcome:  in.Outcome,
		AuthorID: caller.ID,
	}
	if err := h.repo.CreateStory(c.Request.Context(), story); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, story, "success story shared successfully")
}

func (h *StoryHandler) Update(c *gin.Context) {
	story, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, story.AuthorID, "success story"); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Outcome string `json:"outcome"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		pkg.Fail(c, pkg.ValidationError(missing))
		return
	}

	story.Title = in.Title
	story.Content = in.Content
	story.Outcome = in.Outcome
	if err := h.repo.SaveStory(c.Request.Context(), story); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, story, "success story updated successfully")
}

func (h *StoryHandler) Delete(c *gin.Context) {
	story, ok := h.load(c)
	if !ok {
		return
	}
	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, story.AuthorID, "success story"); err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.repo.DeleteStory(c.Request.Context(), story.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "success story deleted successfully")
}

func (h *StoryHandler) Like(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}
	story, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.repo.LikeStory(c.Request.Context(), story.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "liked")
}

// Leaderboard ranks users by activity points, computed fresh on each read.
func (h *StoryHandler) Leaderboard(c *gin.Context) {
	limit := 25
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	users, err := h.repo.TopUsers(c.Request.Context(), limit)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, users, len(users))
}
