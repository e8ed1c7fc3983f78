package pkg

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"hackhive/internal/models"
)

const callerKey = "caller"

// UserSource looks up the account behind a session email.
type UserSource interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware resolves the caller from the Authorization header. It never
// aborts: a missing or invalid token, or an email with no account, leaves the
// caller anonymous and the gate decides downstream. Fails closed.
func AuthMiddleware(secret string, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		email, _ := claims["sub"].(string)
		if email == "" {
			c.Next()
			return
		}

		user, err := users.GetUserByEmail(c.Request.Context(), email)
		if err != nil {
			c.Next()
			return
		}

		c.Set(callerKey, CallerFromUser(user))
		c.Next()
	}
}

// CallerFrom returns the resolved caller, or nil for anonymous requests.
func CallerFrom(c *gin.Context) *Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*Caller)
	return caller
}

// SetCaller is used by tests to inject an identity without a token.
func SetCaller(c *gin.Context, caller *Caller) {
	c.Set(callerKey, caller)
}
