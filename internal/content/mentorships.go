package content

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type MentorshipHandler struct {
	repo *repository.Repository
}

func NewMentorshipHandler(repo *repository.Repository) *MentorshipHandler {
	return &MentorshipHandler{repo: repo}
}

func (h *MentorshipHandler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/mentorships")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id/status", h.UpdateStatus)
	g.POST("/:id/sessions", h.AddSession)
	g.DELETE("/:id", h.Delete)
}

// List returns the caller's mentorships from either side of the
// relationship. Mentorships are never listed publicly.
func (h *MentorshipHandler) List(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	mentorships, err := h.repo.ListMentorshipsForUser(c.Request.Context(), caller.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	for i := range mentorships {
		n, err := h.repo.CountMentorshipSessions(c.Request.Context(), mentorships[i].ID)
		if err != nil {
			pkg.Fail(c, err)
			return
		}
		mentorships[i].SessionCount = n
	}
	pkg.List(c, mentorships, len(mentorships))
}

func (h *MentorshipHandler) load(c *gin.Context, caller *pkg.Caller) (*models.Mentorship, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound("mentorship"))
		return nil, false
	}
	mentorship, err := h.repo.GetMentorship(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, pkg.NotFound("mentorship"))
		return nil, false
	}
	// Only the two parties and admins may see a mentorship at all.
	if caller.Role != models.RoleAdmin && caller.ID != mentorship.MentorID && caller.ID != mentorship.MenteeID {
		pkg.Fail(c, pkg.NotFound("mentorship"))
		return nil, false
	}
	return mentorship, true
}

func (h *MentorshipHandler) Get(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}
	mentorship, ok := h.load(c, caller)
	if !ok {
		return
	}

	sessions, err := h.repo.ListMentorshipSessions(c.Request.Context(), mentorship.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	mentorship.Sessions = sessions
	mentorship.SessionCount = int64(len(sessions))
	pkg.OK(c, mentorship)
}

func (h *MentorshipHandler) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		MentorID string `json:"mentorId"`
		Topic    string `json:"topic"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	var missing []string
	if in.MentorID == "" {
		missing = append(missing, "mentorId")
	}
	if strings.TrimSpace(in.Topic) == "" {
		missing = append(missing, "topic")
	}
	if len(missing) > 0 {
		pkg.Fail(c, pkg.ValidationError(missing))
		return
	}

	mentorID, err := uuid.Parse(in.MentorID)
	if err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid mentorId"))
		return
	}
	if mentorID == caller.ID {
		pkg.Fail(c, pkg.ErrSelfMentorship)
		return
	}
	if _, err := h.repo.GetUserByID(c.Request.Context(), mentorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			pkg.Fail(c, pkg.NotFound("mentor"))
			return
		}
		pkg.Fail(c, err)
		return
	}

	mentorship := &models.Mentorship{
		MentorID: mentorID,
		MenteeID: caller.ID,
		Topic:    in.Topic,
		Message:  in.Message,
		Status:   models.MentorshipPending,
	}
	if err := h.repo.CreateMentorship(c.Request.Context(), mentorship); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, mentorship, "mentorship requested successfully")
}

// UpdateStatus lets the mentor (or an admin) move the mentorship to any
// valid status. There is no transition guard.
func (h *MentorshipHandler) UpdateStatus(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}
	mentorship, ok := h.load(c, caller)
	if !ok {
		return
	}
	if caller.Role != models.RoleAdmin && caller.ID != mentorship.MentorID {
		pkg.Fail(c, pkg.NotFound("mentorship"))
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || !models.MentorshipStatus(in.Status).Valid() {
		pkg.Fail(c, pkg.BadRequest("status must be one of PENDING, ACTIVE, COMPLETED, CANCELLED"))
		return
	}

	mentorship.Status = models.MentorshipStatus(in.Status)
	if err := h.repo.SaveMentorship(c.Request.Context(), mentorship); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, mentorship, "mentorship status updated")
}

func (h *MentorshipHandler) AddSession(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}
	mentorship, ok := h.load(c, caller)
	if !ok {
		return
	}
	if caller.Role != models.RoleAdmin && caller.ID != mentorship.MentorID {
		pkg.Fail(c, pkg.NotFound("mentorship"))
		return
	}
	if mentorship.Status != models.MentorshipActive {
		pkg.Fail(c, pkg.ErrMentorshipInactive)
		return
	}

	var in struct {
		ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
		DurationMinutes int       `json:"durationMinutes"`
		Notes           string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.ValidationError([]string{"scheduledAt"}))
		return
	}

	session := &models.MentorshipSession{
		MentorshipID: mentorship.ID,
		ScheduledAt:  in.ScheduledAt,
		Duration:     models.PGInterval(time.Duration(in.DurationMinutes) * time.Minute),
		Notes:        in.Notes,
	}
	if err := h.repo.CreateMentorshipSession(c.Request.Context(), session); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, session, "session scheduled successfully")
}

func (h *MentorshipHandler) Delete(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}
	mentorship, ok := h.load(c, caller)
	if !ok {
		return
	}
	// The requesting mentee owns the record; admins may also remove it.
	if err := pkg.CanModify(caller, mentorship.MenteeID, "mentorship"); err != nil {
		pkg.Fail(c, err)
		return
	}

	if err := h.repo.DeleteMentorship(c.Request.Context(), mentorship.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "mentorship deleted successfully")
}
