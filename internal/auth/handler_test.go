package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hackhive/internal/admin"
	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
	"hackhive/internal/testutil"
)

const testSecret = "test-secret"

// newAuthEnv wires the real token middleware so the whole chain is covered:
// signup issues a token, the middleware resolves it back into a caller.
func newAuthEnv(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := repository.NewRepository(db)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(pkg.AuthMiddleware(testSecret, repo))
	NewHandler(repo, testSecret).RegisterRoutes(api)
	admin.NewHandler(repo, nil).RegisterRoutes(api)
	return router, repo
}

func doAuth(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var payload *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		payload = strings.NewReader(string(raw))
	} else {
		payload = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type sessionData struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func signup(t *testing.T, router *gin.Engine, email, password string) sessionData {
	t.Helper()
	w := doAuth(t, router, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    email,
		"name":     "Test " + email,
		"password": password,
	}, "")
	testutil.WantStatus(t, w, http.StatusCreated)
	var s sessionData
	testutil.DecodeData(t, w, &s)
	if s.Token == "" {
		t.Fatal("signup returned no token")
	}
	return s
}

func TestSignupAndLogin(t *testing.T) {
	router, _ := newAuthEnv(t)
	s := signup(t, router, "new@test.dev", "supersecret")
	if s.User.Role != models.RoleUser {
		t.Errorf("role = %s, want USER", s.User.Role)
	}

	// Password never leaves the server.
	if raw := s.User.PasswordHash; raw != "" {
		t.Error("password hash leaked in response")
	}

	// Duplicate email is rejected by the unique index.
	w := doAuth(t, router, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    "new@test.dev",
		"name":     "Dupe",
		"password": "supersecret",
	}, "")
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	// Short passwords fail binding.
	w = doAuth(t, router, http.MethodPost, "/api/auth/signup", map[string]any{
		"email":    "short@test.dev",
		"name":     "Short",
		"password": "tiny",
	}, "")
	testutil.WantStatus(t, w, http.StatusBadRequest)

	w = doAuth(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "new@test.dev",
		"password": "supersecret",
	}, "")
	testutil.WantStatus(t, w, http.StatusOK)

	w = doAuth(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "new@test.dev",
		"password": "wrong-password",
	}, "")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestMeAndProfileUpdate(t *testing.T) {
	router, _ := newAuthEnv(t)
	s := signup(t, router, "me@test.dev", "supersecret")

	w := doAuth(t, router, http.MethodGet, "/api/auth/me", nil, "")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")

	w = doAuth(t, router, http.MethodGet, "/api/auth/me", nil, "garbage-token")
	testutil.WantCode(t, w, http.StatusUnauthorized, "UNAUTHENTICATED")

	w = doAuth(t, router, http.MethodGet, "/api/auth/me", nil, s.Token)
	testutil.WantStatus(t, w, http.StatusOK)
	var me models.User
	testutil.DecodeData(t, w, &me)
	if me.Email != "me@test.dev" {
		t.Fatalf("me = %q", me.Email)
	}

	w = doAuth(t, router, http.MethodPut, "/api/auth/me", map[string]any{
		"bio":    "gopher",
		"skills": []string{"go", "sql"},
	}, s.Token)
	testutil.WantStatus(t, w, http.StatusOK)
	var updated models.User
	testutil.DecodeData(t, w, &updated)
	if updated.Bio != "gopher" || len(updated.Skills) != 2 {
		t.Fatalf("profile update: bio=%q skills=%v", updated.Bio, updated.Skills)
	}
}

func TestHostApplicationFlow(t *testing.T) {
	router, repo := newAuthEnv(t)
	s := signup(t, router, "applicant@test.dev", "supersecret")
	adminUser := testutil.MustCreateUser(t, repo, "admin@test.dev", models.RoleAdmin, false, true)

	w := doAuth(t, router, http.MethodPost, "/api/auth/apply-host", nil, s.Token)
	testutil.WantStatus(t, w, http.StatusOK)
	var applied models.User
	testutil.DecodeData(t, w, &applied)
	if applied.Role != models.RoleHost || applied.IsHostApproved {
		t.Fatalf("after apply: role=%s approved=%v", applied.Role, applied.IsHostApproved)
	}

	// Applying twice is rejected.
	w = doAuth(t, router, http.MethodPost, "/api/auth/apply-host", nil, s.Token)
	testutil.WantCode(t, w, http.StatusBadRequest, "VALIDATION_ERROR")

	// Approval is admin-only.
	w = doAuth(t, router, http.MethodPost, "/api/admin/users/"+applied.ID.String()+"/approve-host", nil, s.Token)
	testutil.WantCode(t, w, http.StatusForbidden, "ADMIN_REQUIRED")

	adminLogin := doAuth(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminUser.Email,
		"password": "test-password",
	}, "")
	testutil.WantStatus(t, adminLogin, http.StatusOK)
	var adminSession sessionData
	testutil.DecodeData(t, adminLogin, &adminSession)

	w = doAuth(t, router, http.MethodPost, "/api/admin/users/"+applied.ID.String()+"/approve-host", nil, adminSession.Token)
	testutil.WantStatus(t, w, http.StatusOK)

	after, err := repo.GetUserByID(t.Context(), applied.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !after.IsHostApproved {
		t.Fatal("host not approved after admin action")
	}
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	router, repo := newAuthEnv(t)
	s := signup(t, router, "victim@test.dev", "supersecret")
	adminUser := testutil.MustCreateUser(t, repo, "admin@test.dev", models.RoleAdmin, false, true)

	adminLogin := doAuth(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    adminUser.Email,
		"password": "test-password",
	}, "")
	var adminSession sessionData
	testutil.DecodeData(t, adminLogin, &adminSession)

	w := doAuth(t, router, http.MethodPost, "/api/admin/users/"+s.User.ID.String()+"/deactivate", nil, adminSession.Token)
	testutil.WantStatus(t, w, http.StatusOK)

	w = doAuth(t, router, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "victim@test.dev",
		"password": "supersecret",
	}, "")
	testutil.WantCode(t, w, http.StatusForbidden, "ACCOUNT_INACTIVE")
}
