package content

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"hackhive/internal/models"
	"hackhive/internal/repository"
	"hackhive/internal/testutil"
)

func newMentorshipEnv(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := repository.NewRepository(db)
	router := testutil.NewRouter(repo)
	NewMentorshipHandler(repo).RegisterRoutes(router.Group("/api"))
	return router, repo
}

func TestMentorshipFlow(t *testing.T) {
	router, repo := newMentorshipEnv(t)
	mentor := testutil.MustCreateUser(t, repo, "mentor@test.dev", models.RoleHost, true, true)
	mentee := testutil.MustCreateUser(t, repo, "mentee@test.dev", models.RoleUser, false, true)

	// Requesting yourself is rejected.
	w := testutil.Do(t, router, http.MethodPost, "/api/mentorships", map[string]any{
		"mentorId": mentee.ID.String(),
		"topic":    "Go internals",
	}, mentee.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "SELF_MENTORSHIP_FORBIDDEN")

	w = testutil.Do(t, router, http.MethodPost, "/api/mentorships", map[string]any{
		"mentorId": mentor.ID.String(),
		"topic":    "Go internals",
		"message":  "help me understand the scheduler",
	}, mentee.Email)
	testutil.WantStatus(t, w, http.StatusCreated)
	var m models.Mentorship
	testutil.DecodeData(t, w, &m)
	if m.Status != models.MentorshipPending {
		t.Fatalf("status = %s, want PENDING", m.Status)
	}

	base := "/api/mentorships/" + m.ID.String()

	// Sessions need an active mentorship.
	session := map[string]any{"scheduledAt": "2026-09-10T15:00:00Z", "durationMinutes": 60}
	w = testutil.Do(t, router, http.MethodPost, base+"/sessions", session, mentor.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "MENTORSHIP_NOT_ACTIVE")

	// Only the mentor side may change the status.
	w = testutil.Do(t, router, http.MethodPut, base+"/status", map[string]any{"status": "ACTIVE"}, mentee.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = testutil.Do(t, router, http.MethodPut, base+"/status", map[string]any{"status": "ACTIVE"}, mentor.Email)
	testutil.WantStatus(t, w, http.StatusOK)

	w = testutil.Do(t, router, http.MethodPost, base+"/sessions", session, mentor.Email)
	testutil.WantStatus(t, w, http.StatusCreated)

	var got models.Mentorship
	w = testutil.Do(t, router, http.MethodGet, base, nil, mentee.Email)
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &got)
	if got.SessionCount != 1 || len(got.Sessions) != 1 {
		t.Fatalf("sessions not attached: %+v", got)
	}

	// Outsiders cannot see the mentorship at all.
	outsider := testutil.MustCreateUser(t, repo, "outsider@test.dev", models.RoleUser, false, true)
	w = testutil.Do(t, router, http.MethodGet, base, nil, outsider.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	// The mentee owns the record and may delete it; sessions go with it.
	w = testutil.Do(t, router, http.MethodDelete, base, nil, mentee.Email)
	testutil.WantStatus(t, w, http.StatusOK)

	n, err := repo.CountMentorshipSessions(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if n != 0 {
		t.Fatalf("session rows left after delete: %d", n)
	}
}

func TestMentorshipValidation(t *testing.T) {
	router, repo := newMentorshipEnv(t)
	mentee := testutil.MustCreateUser(t, repo, "mentee@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/mentorships", map[string]any{}, mentee.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	if env := testutil.Decode(t, w); env.Error != "missing required fields: mentorId, topic" {
		t.Fatalf("error = %q", env.Error)
	}

	// An unknown mentor cannot be requested.
	w = testutil.Do(t, router, http.MethodPost, "/api/mentorships", map[string]any{
		"mentorId": "00000000-0000-0000-0000-000000000042",
		"topic":    "anything",
	}, mentee.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = testutil.Do(t, router, http.MethodGet, "/api/mentorships", nil, "")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestMentorshipListScopedToCaller(t *testing.T) {
	router, repo := newMentorshipEnv(t)
	mentor := testutil.MustCreateUser(t, repo, "mentor@test.dev", models.RoleHost, true, true)
	mentee := testutil.MustCreateUser(t, repo, "mentee@test.dev", models.RoleUser, false, true)
	other := testutil.MustCreateUser(t, repo, "other@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/mentorships", map[string]any{
		"mentorId": mentor.ID.String(),
		"topic":    "testing",
	}, mentee.Email)
	testutil.WantStatus(t, w, http.StatusCreated)

	for _, email := range []string{mentor.Email, mentee.Email} {
		var items []models.Mentorship
		w = testutil.Do(t, router, http.MethodGet, "/api/mentorships", nil, email)
		testutil.WantStatus(t, w, http.StatusOK)
		testutil.DecodeData(t, w, &items)
		if len(items) != 1 {
			t.Fatalf("%s sees %d mentorships, want 1", email, len(items))
		}
	}

	var items []models.Mentorship
	w = testutil.Do(t, router, http.MethodGet, "/api/mentorships", nil, other.Email)
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &items)
	if len(items) != 0 {
		t.Fatalf("outsider sees %d mentorships, want 0", len(items))
	}
}
