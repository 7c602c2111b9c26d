package controllers

import (
	"context"
	"net/http"

	"github.com/sathaneem/aadhi-academy/internal/delivery/http/controllers/middleware"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/internal/service/catalog"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxLessonFileBytes = 2 << 30

type LessonService interface {
	AddLesson(ctx context.Context, courseID uuid.UUID, input catalog.LessonInput) (*models.Lesson, error)
	ListLessons(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID uuid.UUID) error
	LessonFileURL(ctx context.Context, lessonID uuid.UUID) (string, error)
}

type LessonAccessService interface {
	LessonFileURL(ctx context.Context, studentID, lessonID uuid.UUID) (string, error)
}

type LessonHandler struct {
	log     logger.Log
	service LessonService
	access  LessonAccessService
}

func NewLessonHandler(l logger.Log, s LessonService, a LessonAccessService) *LessonHandler {
	return &LessonHandler{
		log:     l,
		service: s,
		access:  a,
	}
}

type newTextLessonRequest struct {
	Title string `json:"title" binding:"required"`
	Text  string `json:"text" binding:"required"`
}

// AddTextLesson accepts a JSON body for inline text lessons.
func (h *LessonHandler) AddTextLesson(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	var input newTextLessonRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lesson, err := h.service.AddLesson(c.Request.Context(), courseID, catalog.LessonInput{
		Title: input.Title,
		Kind:  models.ContentKindText,
		Text:  &input.Text,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// AddFileLesson accepts a multipart form for video and pdf lessons. The file
// bytes go straight to object storage; only the object key is persisted.
func (h *LessonHandler) AddFileLesson(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	title := c.PostForm("title")
	kind := c.PostForm("kind")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > maxLessonFileBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	lesson, err := h.service.AddLesson(c.Request.Context(), courseID, catalog.LessonInput{
		Title:       title,
		Kind:        kind,
		Filename:    fileHeader.Filename,
		File:        file,
		FileSize:    fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	lessons, err := h.service.ListLessons(c.Request.Context(), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	if err := h.service.DeleteLesson(c.Request.Context(), lessonID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// LessonFileURL hands the client a presigned URL for video/pdf playback.
// Students must be enrolled in the lesson's course; admins can preview any
// lesson's file.
func (h *LessonHandler) LessonFileURL(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	if c.GetBool(middleware.IsAdminCtx) {
		url, err := h.service.LessonFileURL(c.Request.Context(), lessonID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}

	id, ok := c.Get(middleware.ClientIDCtx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	studentID := id.(uuid.UUID)

	url, err := h.access.LessonFileURL(c.Request.Context(), studentID, lessonID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
