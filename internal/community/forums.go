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

type ForumHandler struct {
	repo *repository.Repository
}

func NewForumHandler(repo *repository.Repository) *ForumHandler {
	return &ForumHandler{repo: repo}
}

func (h *ForumHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/forums")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/:id/replies", h.Reply)
	g.DELETE("/:id", h.Delete)
}

func (h *ForumHandler) List(c *gin.Context) {
	forums, err := h.repo.ListForums(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(forums))
	authorIDs := make([]uuid.UUID, 0, len(forums))
	for i := range forums {
		ids = append(ids, forums[i].ID)
		authorIDs = append(authorIDs, forums[i].AuthorID)
	}
	replies, err := h.repo.ReplyCounts(c.Request.Context(), ids)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	authors, err := h.repo.UserInfos(c.Request.Context(), authorIDs)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	for i := range forums {
		forums[i].ReplyCount = replies[forums[i].ID]
		forums[i].Author = authors[forums[i].AuthorID]
	}
	pkg.List(c, forums, len(forums))
}

func (h *ForumHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}
	forum, err := h.repo.GetForum(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}

	authors, err := h.repo.UserInfos(c.Request.Context(), []uuid.UUID{forum.AuthorID})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	forum.Author = authors[forum.AuthorID]
	forum.ReplyCount = int64(len(forum.Replies))
	pkg.OK(c, forum)
}

func (h *ForumHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		Title    string            `json:"title"`
		Content  string            `json:"content"`
		Category string            `json:"category"`
		Tags     models.StringList `json:"tags"`
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
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		pkg.Fail(c, pkg.ValidationError(missing))
		return
	}

	forum := &models.Forum{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Tags:     in.Tags,
		AuthorID: caller.ID,
	}
	err := h.repo.Transaction(c.Request.Context(), func(tx *repository.Repository) error {
		if err := tx.CreateForum(c.Request.Context(), forum); err != nil {
			return err
		}
		return tx.AwardPoints(c.Request.Context(), caller.ID, service.PointsForumPost)
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, forum, "forum post created successfully")
}

func (h *ForumHandler) Reply(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}
	if _, err := h.repo.GetForum(c.Request.Context(), id); err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}

	var in struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Content) == "" {
		pkg.Fail(c, pkg.ValidationError([]string{"content"}))
		return
	}

	reply := &models.ForumReply{
		ForumID:  id,
		AuthorID: caller.ID,
		Content:  in.Content,
	}
	if err := h.repo.CreateForumReply(c.Request.Context(), reply); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, reply, "reply posted successfully")
}

func (h *ForumHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}
	forum, err := h.repo.GetForum(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("forum post"))
		return
	}

	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, forum.AuthorID, "forum post"); err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.repo.DeleteForum(c.Request.Context(), id); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "forum post deleted successfully")
}
