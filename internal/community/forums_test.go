package community

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhive/internal/models"
	"hackhive/internal/repository"
	"hackhive/internal/service"
	"hackhive/internal/testutil"
)

func newForumEnv(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := repository.NewRepository(db)
	router := testutil.NewRouter(repo)
	api := router.Group("/api")
	NewForumHandler(repo).RegisterRoutes(api)
	NewStoryHandler(repo).RegisterRoutes(api)
	return router, repo
}

func TestForumPostAndReplies(t *testing.T) {
	router, repo := newForumEnv(t)
	author := testutil.MustCreateUser(t, repo, "author@test.dev", models.RoleUser, false, true)
	replier := testutil.MustCreateUser(t, repo, "replier@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/forums", map[string]any{
		"title":    "Generics question",
		"content":  "How do pointer constraints work?",
		"category": "go",
		"tags":     []string{"generics"},
	}, author.Email)
	testutil.WantStatus(t, w, http.StatusCreated)
	var forum models.Forum
	testutil.DecodeData(t, w, &forum)

	// Posting awards activity points in the same write.
	after, err := repo.GetUserByID(t.Context(), author.ID)
	if err != nil {
		t.Fatalf("get author: %v", err)
	}
	if after.Points != service.PointsForumPost {
		t.Errorf("points = %d, want %d", after.Points, service.PointsForumPost)
	}

	w = testutil.Do(t, router, http.MethodPost, "/api/forums/"+forum.ID.String()+"/replies", map[string]any{
		"content": "They constrain the type parameter to a pointer type.",
	}, replier.Email)
	testutil.WantStatus(t, w, http.StatusCreated)

	w = testutil.Do(t, router, http.MethodPost, "/api/forums/"+forum.ID.String()+"/replies", map[string]any{}, replier.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	// Reading bumps the view counter and attaches replies.
	var got models.Forum
	w = testutil.Do(t, router, http.MethodGet, "/api/forums/"+forum.ID.String(), nil, "")
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &got)
	if got.ReplyCount != 1 || len(got.Replies) != 1 {
		t.Fatalf("replies not attached: %+v", got)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}

	// Replies show up in list counts too.
	var list []models.Forum
	w = testutil.Do(t, router, http.MethodGet, "/api/forums", nil, "")
	testutil.DecodeData(t, w, &list)
	if len(list) != 1 || list[0].ReplyCount != 1 || list[0].Author == nil {
		t.Fatalf("list decoration: %+v", list)
	}

	// Only the author (or an admin) may delete, and replies go with the post.
	w = testutil.Do(t, router, http.MethodDelete, "/api/forums/"+forum.ID.String(), nil, replier.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = testutil.Do(t, router, http.MethodDelete, "/api/forums/"+forum.ID.String(), nil, author.Email)
	testutil.WantStatus(t, w, http.StatusOK)

	counts, err := repo.ReplyCounts(t.Context(), []uuid.UUID{forum.ID})
	if err != nil {
		t.Fatalf("reply counts: %v", err)
	}
	if counts[forum.ID] != 0 {
		t.Fatalf("reply rows left after delete: %d", counts[forum.ID])
	}
}

func TestForumValidation(t *testing.T) {
	router, repo := newForumEnv(t)
	user := testutil.MustCreateUser(t, repo, "user@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/forums", map[string]any{}, user.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	if env := testutil.Decode(t, w); env.Error != "missing required fields: title, content, category" {
		t.Fatalf("error = %q", env.Error)
	}

	w = testutil.Do(t, router, http.MethodPost, "/api/forums", map[string]any{
		"title": "t", "content": "c", "category": "go",
	}, "")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestSuccessStoriesAndLeaderboard(t *testing.T) {
	router, repo := newForumEnv(t)
	author := testutil.MustCreateUser(t, repo, "author@test.dev", models.RoleUser, false, true)
	fan := testutil.MustCreateUser(t, repo, "fan@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/success-stories", map[string]any{
		"title":   "From zero to winner",
		"content": "We shipped in 48 hours.",
		"outcome": "First place",
	}, author.Email)
	testutil.WantStatus(t, w, http.StatusCreated)
	var story models.SuccessStory
	testutil.DecodeData(t, w, &story)

	w = testutil.Do(t, router, http.MethodPost, "/api/success-stories/"+story.ID.String()+"/like", nil, fan.Email)
	testutil.WantStatus(t, w, http.StatusOK)

	var got models.SuccessStory
	w = testutil.Do(t, router, http.MethodGet, "/api/success-stories/"+story.ID.String(), nil, "")
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &got)
	if got.Likes != 1 {
		t.Errorf("likes = %d, want 1", got.Likes)
	}

	// Non-authors get a 404 on mutation.
	w = testutil.Do(t, router, http.MethodPut, "/api/success-stories/"+story.ID.String(), map[string]any{
		"title": "hijacked", "content": "x",
	}, fan.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	// Leaderboard orders by points.
	if err := repo.AwardPoints(t.Context(), fan.ID, 50); err != nil {
		t.Fatalf("award: %v", err)
	}
	var board []models.User
	w = testutil.Do(t, router, http.MethodGet, "/api/leaderboard", nil, "")
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &board)
	if len(board) != 2 || board[0].ID != fan.ID {
		t.Fatalf("leaderboard order: %+v", board)
	}

	board = nil
	w = testutil.Do(t, router, http.MethodGet, "/api/leaderboard?limit=1", nil, "")
	testutil.DecodeData(t, w, &board)
	if len(board) != 1 {
		t.Fatalf("leaderboard limit: %d rows", len(board))
	}
}
