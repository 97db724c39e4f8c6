package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskhub/internal/models"
	"taskhub/internal/pagination"
)

// All responses share one envelope:
// {success, data?, message?, pagination?, errors?}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondDataMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{"success": true, "data": data, "message": message})
}

func respondList(c *gin.Context, data interface{}, page pagination.Page) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "pagination": page})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func respondValidation(c *gin.Context, errs []models.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
}

// serviceError maps the service sentinels onto HTTP codes. Not-found
// and forbidden stay distinct: a foreign task answers 403.
func serviceError(c *gin.Context, err error) {
	switch err {
	case models.ErrTaskNotFound:
		respondError(c, http.StatusNotFound, "Task not found")
	case models.ErrForbidden:
		respondError(c, http.StatusForbidden, "Not authorized to access this task")
	case models.ErrUserNotFound:
		respondError(c, http.StatusNotFound, "User not found")
	case models.ErrEmailTaken:
		respondError(c, http.StatusBadRequest, "Email already registered")
	case models.ErrInvalidCredentials:
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func currentUserID(c *gin.Context) string {
	v, ok := c.Get("user_id")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// parseDate accepts RFC3339 or a bare date, which is what the date
// picker submits.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
