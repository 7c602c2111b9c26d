package controllers

import (
	"context"
	"net/http"

	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentService interface {
	EnrollByEmail(ctx context.Context, email string, courseID uuid.UUID) (*models.Enrollment, error)
	Unenroll(ctx context.Context, enrollmentID uuid.UUID) error
	Roster(ctx context.Context, courseID uuid.UUID) ([]models.RosterEntry, error)
}

type EnrollmentHandler struct {
	log     logger.Log
	service EnrollmentService
}

func NewEnrollmentHandler(l logger.Log, s EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		log:     l,
		service: s,
	}
}

type enrollRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *EnrollmentHandler) EnrollStudent(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input enrollRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enrollment, err := h.service.EnrollByEmail(c.Request.Context(), input.Email, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) RemoveStudent(c *gin.Context) {
	enrollmentID, err := uuid.Parse(c.Param("enrollment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid enrollment_id"})
		return
	}

	if err := h.service.Unenroll(c.Request.Context(), enrollmentID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *EnrollmentHandler) Roster(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	entries, err := h.service.Roster(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
