package pkg

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hackhive/internal/metrics"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func List(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "total": total})
}

func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

func Updated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Fail writes the error envelope. Unknown errors are logged server-side and
// surfaced as a generic message, never with internal details.
func Fail(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			metrics.AuthDenials.Inc()
		}
		c.JSON(apiErr.Status, gin.H{"success": false, "error": apiErr.Message, "code": apiErr.Code})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error", "code": "INTERNAL_ERROR"})
}
