package competition

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/notify"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
	"hackhive/internal/service"
)

// Spec is the per-kind metadata that turns the shared handler into a
// concrete resource family. The label is the kind's domain field (theme,
// category, platform).
type Spec struct {
	Kind       string // singular, used in messages and the ledger
	Path       string // route segment, e.g. "hackathons"
	Table      string
	LabelField string // JSON name, also the query filter parameter
}

// Date accepts both RFC3339 timestamps and bare dates in request bodies.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date: %s", s)
}

// Input is the write body shared by all competition kinds. Fields a kind
// does not use are ignored. Status and host are server-assigned on create
// no matter what the body carries.
type Input struct {
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Theme           string            `json:"theme"`
	Category        string            `json:"category"`
	Platform        string            `json:"platform"`
	Difficulty      string            `json:"difficulty"`
	StartDate       Date              `json:"startDate"`
	EndDate         Date              `json:"endDate"`
	Prize           string            `json:"prize"`
	MaxParticipants int               `json:"maxParticipants"`
	Tags            models.StringList `json:"tags"`
	TechStack       models.StringList `json:"techStack"`
	Dataset         string            `json:"dataset"`
	Location        string            `json:"location"`
	Speakers        models.StringList `json:"speakers"`
	Status          string            `json:"status"`
}

func (in *Input) label(field string) string {
	switch field {
	case "theme":
		return in.Theme
	case "platform":
		return in.Platform
	default:
		return in.Category
	}
}

type Handler[T any, PT models.CompetitionPtr[T]] struct {
	repo      *repository.Repository
	reg       *service.RegistrationService
	spec      Spec
	apply     func(PT, *Input)
	announcer notify.Announcer
	threshold int
}

func NewHandler[T any, PT models.CompetitionPtr[T]](
	repo *repository.Repository,
	reg *service.RegistrationService,
	spec Spec,
	apply func(PT, *Input),
	announcer notify.Announcer,
	featuredThreshold int,
) *Handler[T, PT] {
	return &Handler[T, PT]{
		repo:      repo,
		reg:       reg,
		spec:      spec,
		apply:     apply,
		announcer: announcer,
		threshold: featuredThreshold,
	}
}

// RegisterRoutes mounts the public CRUD surface on api and the owner-scoped
// list on host.
func (h *Handler[T, PT]) RegisterRoutes(api, host *gin.RouterGroup) {
	g := api.Group("/" + h.spec.Path)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/participate", h.Participate)
	g.POST("/:id/submissions", h.Submit)

	host.GET("/"+h.spec.Path, h.HostList)
}

func (h *Handler[T, PT]) filter(c *gin.Context) repository.CompetitionFilter {
	return repository.CompetitionFilter{
		Kind:        h.spec.Kind,
		Table:       h.spec.Table,
		LabelColumn: h.spec.LabelField,
		Search:      c.Query("search"),
		Label:       c.Query(h.spec.LabelField),
		Difficulty:  c.Query("difficulty"),
		Status:      c.Query("status"),
		Sort:        c.Query("sort"),
	}
}

// decorate attaches host profiles, live counts and the derived featured flag
// to a result set.
func (h *Handler[T, PT]) decorate(c *gin.Context, items []T) error {
	ctx := c.Request.Context()
	ids := make([]uuid.UUID, 0, len(items))
	hostIDs := make([]uuid.UUID, 0, len(items))
	for i := range items {
		b := PT(&items[i]).Base()
		ids = append(ids, b.ID)
		hostIDs = append(hostIDs, b.HostID)
	}

	participants, err := h.repo.ParticipantCounts(ctx, h.spec.Kind, ids)
	if err != nil {
		return err
	}
	submissions, err := h.repo.SubmissionCounts(ctx, h.spec.Kind, ids)
	if err != nil {
		return err
	}
	hosts, err := h.repo.UserInfos(ctx, hostIDs)
	if err != nil {
		return err
	}

	for i := range items {
		b := PT(&items[i]).Base()
		b.ParticipantCount = participants[b.ID]
		b.SubmissionCount = submissions[b.ID]
		b.Host = hosts[b.HostID]
		b.Featured = pkg.IsFeatured(b.Prize, h.threshold)
	}
	return nil
}

func (h *Handler[T, PT]) List(c *gin.Context) {
	items, err := repository.ListCompetitions[T, PT](c.Request.Context(), h.repo, h.filter(c))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.decorate(c, items); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, items, len(items))
}

func (h *Handler[T, PT]) load(c *gin.Context) (PT, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		pkg.Fail(c, pkg.NotFound(h.spec.Kind))
		return nil, false
	}
	item, err := repository.GetCompetition[T, PT](c.Request.Context(), h.repo, id)
	if err != nil {
		if err == repository.ErrNotFound {
			pkg.Fail(c, pkg.NotFound(h.spec.Kind))
		} else {
			pkg.Fail(c, err)
		}
		return nil, false
	}
	return item, true
}

func (h *Handler[T, PT]) Get(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	b := item.Base()
	ctx := c.Request.Context()

	participants, err := h.repo.ListParticipants(ctx, h.spec.Kind, b.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	userIDs := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		userIDs = append(userIDs, p.UserID)
	}
	userIDs = append(userIDs, b.HostID)
	users, err := h.repo.UserInfos(ctx, userIDs)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	for i := range participants {
		participants[i].User = users[participants[i].UserID]
	}

	submissions, err := h.repo.ListSubmissions(ctx, h.spec.Kind, b.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	b.Host = users[b.HostID]
	b.Participants = participants
	b.Submissions = submissions
	b.ParticipantCount = int64(len(participants))
	b.SubmissionCount = int64(len(submissions))
	b.Featured = pkg.IsFeatured(b.Prize, h.threshold)
	pkg.OK(c, item)
}

// validate reports all missing required fields as one combined error.
func (h *Handler[T, PT]) validate(in *Input) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(in.label(h.spec.LabelField)) == "" {
		missing = append(missing, h.spec.LabelField)
	}
	if in.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if in.EndDate.IsZero() {
		missing = append(missing, "endDate")
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
	if in.Status != "" && !models.CompetitionStatus(in.Status).Valid() {
		return pkg.BadRequest("invalid status: " + in.Status)
	}
	return nil
}

func (h *Handler[T, PT]) applyBase(b *models.CompetitionBase, in *Input) {
	b.Title = in.Title
	b.Description = in.Description
	b.Difficulty = models.Difficulty(in.Difficulty)
	b.StartDate = in.StartDate.Time
	b.EndDate = in.EndDate.Time
	b.Prize = in.Prize
	b.MaxParticipants = in.MaxParticipants
	b.Tags = in.Tags
}

func (h *Handler[T, PT]) Create(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanCreateHostGated(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := h.validate(&in); err != nil {
		pkg.Fail(c, err)
		return
	}

	item := PT(new(T))
	b := item.Base()
	h.applyBase(b, &in)
	h.apply(item, &in)
	b.Status = models.StatusUpcoming
	b.HostID = caller.ID

	if err := h.repo.CreateCompetition(c.Request.Context(), item); err != nil {
		pkg.Fail(c, err)
		return
	}
	if h.announcer != nil {
		h.announcer.AnnounceCompetition(h.spec.Kind, b.Title, b.Prize)
	}
	b.Featured = pkg.IsFeatured(b.Prize, h.threshold)
	pkg.Created(c, item, h.spec.Kind+" created successfully")
}

func (h *Handler[T, PT]) Update(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	b := item.Base()

	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, b.HostID, h.spec.Kind); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if err := h.validate(&in); err != nil {
		pkg.Fail(c, err)
		return
	}

	// Full-replace semantics; host and id stay server-owned. Any valid
	// status value is accepted, there is no transition guard.
	h.applyBase(b, &in)
	h.apply(item, &in)
	if in.Status != "" {
		b.Status = models.CompetitionStatus(in.Status)
	}

	if err := h.repo.SaveCompetition(c.Request.Context(), item); err != nil {
		pkg.Fail(c, err)
		return
	}
	b.Featured = pkg.IsFeatured(b.Prize, h.threshold)
	pkg.Updated(c, item, h.spec.Kind+" updated successfully")
}

func (h *Handler[T, PT]) Delete(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	b := item.Base()

	caller := pkg.CallerFrom(c)
	if err := pkg.CanModify(caller, b.HostID, h.spec.Kind); err != nil {
		pkg.Fail(c, err)
		return
	}

	if err := repository.DeleteCompetition[T](c.Request.Context(), h.repo, h.spec.Kind, b.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, h.spec.Kind+" deleted successfully")
}

func (h *Handler[T, PT]) Participate(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	b := item.Base()

	caller := pkg.CallerFrom(c)
	if err := pkg.CanRegister(caller, b.HostID); err != nil {
		pkg.Fail(c, err)
		return
	}

	if _, err := h.reg.Register(c.Request.Context(), h.spec.Kind, b.ID, caller.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Message(c, "registered for "+h.spec.Kind+" successfully")
}

func (h *Handler[T, PT]) Submit(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	b := item.Base()

	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	var in struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		RepoURL string `json:"repoUrl"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		pkg.Fail(c, pkg.ValidationError([]string{"title"}))
		return
	}

	submission := &models.Submission{
		Kind:       h.spec.Kind,
		ResourceID: b.ID,
		UserID:     caller.ID,
		Title:      in.Title,
		Content:    in.Content,
		RepoURL:    in.RepoURL,
	}
	if _, err := h.reg.Submit(c.Request.Context(), submission); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Created(c, submission, "submission created successfully")
}

// HostList is the owner-scoped management view: callers only ever see their
// own rows.
func (h *Handler[T, PT]) HostList(c *gin.Context) {
	caller := pkg.CallerFrom(c)
	if err := pkg.CanWrite(caller); err != nil {
		pkg.Fail(c, err)
		return
	}

	items, err := repository.HostCompetitions[T, PT](c.Request.Context(), h.repo, caller.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	if err := h.decorate(c, items); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.List(c, items, len(items))
}
