package community

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"hackhive/internal/models"
	"hackhive/internal/repository"
	"hackhive/internal/service"
	"hackhive/internal/testutil"
)

func newTeamEnv(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := repository.NewRepository(db)
	router := testutil.NewRouter(repo)
	api := router.Group("/api")
	NewTeamHandler(repo, service.NewTeamService(repo)).RegisterRoutes(api)
	return router, repo
}

func TestTeamLifecycle(t *testing.T) {
	router, repo := newTeamEnv(t)
	host := testutil.MustCreateUser(t, repo, "host@test.dev", models.RoleHost, true, true)
	leader := testutil.MustCreateUser(t, repo, "leader@test.dev", models.RoleUser, false, true)

	hackathon := &models.Hackathon{
		CompetitionBase: models.CompetitionBase{
			Title:       "Team Hack",
			Description: "Bring friends",
			Difficulty:  models.DifficultyBeginner,
			Status:      models.StatusUpcoming,
			HostID:      host.ID,
		},
		Theme: "Teams",
	}
	if err := repo.CreateCompetition(t.Context(), hackathon); err != nil {
		t.Fatalf("seed hackathon: %v", err)
	}

	// Creation requires an existing hackathon.
	w := testutil.Do(t, router, http.MethodPost, "/api/teams", map[string]any{
		"name":        "Gophers",
		"hackathonId": "00000000-0000-0000-0000-000000000009",
	}, leader.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = testutil.Do(t, router, http.MethodPost, "/api/teams", map[string]any{
		"name":        "Gophers",
		"hackathonId": hackathon.ID.String(),
		"maxMembers":  3,
	}, leader.Email)
	testutil.WantStatus(t, w, http.StatusCreated)
	var team models.Team
	testutil.DecodeData(t, w, &team)

	// The creator joins as leader in the same write.
	got, err := repo.GetTeam(t.Context(), team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Members) != 1 || got.Members[0].Role != models.TeamRoleLeader || got.Members[0].UserID != leader.ID {
		t.Fatalf("members after create: %+v", got.Members)
	}

	joiner := testutil.MustCreateUser(t, repo, "joiner@test.dev", models.RoleUser, false, true)
	joinPath := "/api/teams/" + team.ID.String() + "/join"

	w = testutil.Do(t, router, http.MethodPost, joinPath, nil, joiner.Email)
	testutil.WantStatus(t, w, http.StatusCreated)

	w = testutil.Do(t, router, http.MethodPost, joinPath, nil, joiner.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "ALREADY_A_MEMBER")

	third := testutil.MustCreateUser(t, repo, "third@test.dev", models.RoleUser, false, true)
	w = testutil.Do(t, router, http.MethodPost, joinPath, nil, third.Email)
	testutil.WantStatus(t, w, http.StatusCreated)

	// The cap of 3 is now reached.
	fourth := testutil.MustCreateUser(t, repo, "fourth@test.dev", models.RoleUser, false, true)
	w = testutil.Do(t, router, http.MethodPost, joinPath, nil, fourth.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "TEAM_FULL")

	// Only the leader (or an admin) may disband the team.
	w = testutil.Do(t, router, http.MethodDelete, "/api/teams/"+team.ID.String(), nil, joiner.Email)
	testutil.WantCode(t, w, http.StatusNotFound, "NOT_FOUND")

	w = testutil.Do(t, router, http.MethodDelete, "/api/teams/"+team.ID.String(), nil, leader.Email)
	testutil.WantStatus(t, w, http.StatusOK)

	n, err := repo.CountTeamMembers(t.Context(), team.ID)
	if err != nil {
		t.Fatalf("count members: %v", err)
	}
	if n != 0 {
		t.Fatalf("member rows left after disband: %d", n)
	}
}

func TestTeamValidation(t *testing.T) {
	router, repo := newTeamEnv(t)
	user := testutil.MustCreateUser(t, repo, "user@test.dev", models.RoleUser, false, true)

	w := testutil.Do(t, router, http.MethodPost, "/api/teams", map[string]any{}, user.Email)
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	w = testutil.Do(t, router, http.MethodPost, "/api/teams", map[string]any{"name": "x", "hackathonId": "h"}, "")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestTeamListByHackathon(t *testing.T) {
	router, repo := newTeamEnv(t)
	host := testutil.MustCreateUser(t, repo, "host@test.dev", models.RoleHost, true, true)
	user := testutil.MustCreateUser(t, repo, "user@test.dev", models.RoleUser, false, true)

	var hackathons [2]*models.Hackathon
	for i := range hackathons {
		hackathons[i] = &models.Hackathon{
			CompetitionBase: models.CompetitionBase{
				Title:       "Hack",
				Description: "d",
				Difficulty:  models.DifficultyBeginner,
				Status:      models.StatusUpcoming,
				HostID:      host.ID,
			},
			Theme: "t",
		}
		if err := repo.CreateCompetition(t.Context(), hackathons[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	for _, h := range hackathons {
		w := testutil.Do(t, router, http.MethodPost, "/api/teams", map[string]any{
			"name":        "Team " + h.ID.String()[:8],
			"hackathonId": h.ID.String(),
		}, user.Email)
		testutil.WantStatus(t, w, http.StatusCreated)
	}

	var teams []models.Team
	w := testutil.Do(t, router, http.MethodGet, "/api/teams?hackathonId="+hackathons[0].ID.String(), nil, "")
	testutil.WantStatus(t, w, http.StatusOK)
	testutil.DecodeData(t, w, &teams)
	if len(teams) != 1 || teams[0].HackathonID != hackathons[0].ID {
		t.Fatalf("filtered teams: %+v", teams)
	}

	teams = nil
	w = testutil.Do(t, router, http.MethodGet, "/api/teams", nil, "")
	testutil.DecodeData(t, w, &teams)
	if len(teams) != 2 {
		t.Fatalf("unfiltered teams: %+v", teams)
	}
}
