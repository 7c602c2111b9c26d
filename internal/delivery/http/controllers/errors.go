package controllers

import (
	"net/http"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"

	"github.com/gin-gonic/gin"
)

// respondError maps an error kind to an HTTP status. Callers distinguish
// errors by kind, never by message text.
func respondError(c *gin.Context, err error) {
	switch {
	case app_errors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case app_errors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case app_errors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case app_errors.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
