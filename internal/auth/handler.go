package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"hackhive/internal/metrics"
	"hackhive/internal/models"
	"hackhive/internal/pkg"
	"hackhive/internal/repository"
)

type Handler struct {
	repo      *repository.Repository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewHandler(repo *repository.Repository, jwtSecret string) *Handler {
	return &Handler{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  72 * time.Hour,
	}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me)
	g.PUT("/me", h.UpdateProfile)
	g.POST("/me/avatar", h.UploadAvatar)
	g.POST("/apply-host", h.ApplyHost)
}

func (h *Handler) issueToken(email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(h.tokenTTL).Unix(),
	})
	return token.SignedString([]byte(h.jwtSecret))
}

func (h *Handler) Signup(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("email, name and a password of at least 8 characters are required"))
		return
	}

	user := &models.User{
		Email:        in.Email,
		Name:         in.Name,
		TempPassword: in.Password,
		Role:         models.RoleUser,
		IsActive:     true,
		Level:        1,
	}
	if err := h.repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			pkg.Fail(c, pkg.BadRequest("an account with this email already exists"))
			return
		}
		pkg.Fail(c, err)
		return
	}

	token, err := h.issueToken(user.Email)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	metrics.Signups.Inc()
	pkg.Created(c, gin.H{"token": token, "user": user}, "account created successfully")
}

func (h *Handler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("email and password are required"))
		return
	}

	user, err := h.repo.GetUserByEmail(c.Request.Context(), in.Email)
	if err != nil {
		pkg.Fail(c, pkg.ErrUnauthenticated)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		pkg.Fail(c, pkg.ErrUnauthenticated)
		return
	}
	if !user.IsActive {
		pkg.Fail(c, pkg.ErrAccountInactive)
		return
	}

	token, err := h.issueToken(user.Email)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, gin.H{"token": token, "user": user})
}

func (h *Handler) currentUser(c *gin.Context) (*models.User, bool) {
	caller := pkg.CallerFrom(c)
	if caller == nil {
		pkg.Fail(c, pkg.ErrUnauthenticated)
		return nil, false
	}
	user, err := h.repo.GetUserByID(c.Request.Context(), caller.ID)
	if err != nil {
		pkg.Fail(c, pkg.ErrUnauthenticated)
		return nil, false
	}
	return user, true
}

func (h *Handler) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	pkg.OK(c, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var in struct {
		Name        string            `json:"name"`
		Bio         string            `json:"bio"`
		AvatarURL   string            `json:"avatarUrl"`
		Skills      models.StringList `json:"skills"`
		SocialLinks datatypes.JSON    `json:"socialLinks"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		pkg.Fail(c, pkg.BadRequest("invalid request body"))
		return
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	user.Bio = in.Bio
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.Skills != nil {
		user.Skills = in.Skills
	}
	if in.SocialLinks != nil {
		user.SocialLinks = in.SocialLinks
	}

	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, user, "profile updated successfully")
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		pkg.Fail(c, pkg.BadRequest("avatar file is required"))
		return
	}

	path, err := pkg.SaveAvatar(file, user.ID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	user.AvatarURL = path
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, gin.H{"avatarUrl": path}, "avatar uploaded successfully")
}

// ApplyHost switches a USER to HOST pending admin approval. Approved hosts
// and admins are left untouched.
func (h *Handler) ApplyHost(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if !user.IsActive {
		pkg.Fail(c, pkg.ErrAccountInactive)
		return
	}
	if user.Role != models.RoleUser {
		pkg.Fail(c, pkg.BadRequest("host application is only available to regular users"))
		return
	}

	user.Role = models.RoleHost
	user.IsHostApproved = false
	if err := h.repo.UpdateUser(c.Request.Context(), user); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.Updated(c, user, "host application submitted, pending admin approval")
}
