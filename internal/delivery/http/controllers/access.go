package controllers

import (
	"context"
	"net/http"

	"github.com/sathaneem/aadhi-academy/internal/delivery/http/controllers/middleware"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccessService interface {
	CourseView(ctx context.Context, studentID, courseID uuid.UUID) (*models.CourseView, error)
	Dashboard(ctx context.Context, studentID uuid.UUID) ([]models.CourseSummary, error)
}

type ProgressService interface {
	MarkCompleted(ctx context.Context, studentID, lessonID uuid.UUID) error
	GetProgress(ctx context.Context, studentID, courseID uuid.UUID) (map[uuid.UUID]bool, error)
}

type AccessHandler struct {
	log      logger.Log
	access   AccessService
	progress ProgressService
}

func NewAccessHandler(l logger.Log, a AccessService, p ProgressService) *AccessHandler {
	return &AccessHandler{
		log:      l,
		access:   a,
		progress: p,
	}
}

func (h *AccessHandler) CourseView(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	studentID := id.(uuid.UUID)

	view, err := h.access.CourseView(c.Request.Context(), studentID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccessHandler) Dashboard(c *gin.Context) {
	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	studentID := id.(uuid.UUID)

	summaries, err := h.access.Dashboard(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// Progress returns the per-lesson completion map for one course.
func (h *AccessHandler) Progress(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	studentID := id.(uuid.UUID)

	result, err := h.progress.GetProgress(c.Request.Context(), studentID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AccessHandler) MarkCompleted(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	studentID := id.(uuid.UUID)

	if err := h.progress.MarkCompleted(c.Request.Context(), studentID, lessonID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}
