package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

// OpenDB returns an isolated in-memory database with the full schema.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.AIChallenge{},
		&models.WebContest{},
		&models.MobileInnovation{},
		&models.Conference{},
		&models.Participant{},
		&models.Submission{},
		&models.Tutorial{},
		&models.LearningResource{},
		&models.Mentorship{},
		&models.MentorshipSession{},
		&models.Forum{},
		&models.ForumReply{},
		&models.Team{},
		&models.TeamMember{},
		&models.SuccessStory{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// NewRouter builds a gin engine whose identity layer mirrors production:
// the X-Test-User header plays the role of the session email and the caller
// is resolved through the same repository lookup.
func NewRouter(repo *repository.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if email := c.GetHeader("X-Test-User"); email != "" {
			if user, err := repo.GetUserByEmail(c.Request.Context(), email); err == nil {
				pkg.SetCaller(c, pkg.CallerFromUser(user))
			}
		}
		c.Next()
	})
	return router
}

// MustCreateUser seeds an account directly through the repository.
func MustCreateUser(t *testing.T, repo *repository.Repository, email string, role models.Role, hostApproved, active bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:          email,
		Name:           email,
		TempPassword:   "test-password",
		Role:           role,
		IsHostApproved: hostApproved,
		IsActive:       active,
		Level:          1,
	}
	if err := repo.CreateUser(t.Context(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// Do performs a request as the given user (empty email = anonymous).
func Do(t *testing.T, router *gin.Engine, method, path string, body any, email string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("X-Test-User", email)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Envelope is the response wrapper every endpoint uses.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, w.Body.String())
	}
	return env
}

func DecodeData(t *testing.T, w *httptest.ResponseRecorder, out any) Envelope {
	t.Helper()
	env := Decode(t, w)
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v (data: %s)", err, string(env.Data))
		}
	}
	return env
}

func WantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func WantCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	WantStatus(t, w, status)
	env := Decode(t, w)
	if env.Code != code {
		t.Fatalf("error code = %q, want %q (body: %s)", env.Code, code, w.Body.String())
	}
}
