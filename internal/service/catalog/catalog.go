package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error)
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	ListCourses(ctx context.Context) ([]models.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) (objectKeys []string, err error)
}

type lessonRepo interface {
	CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error)
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
	DeleteLesson(ctx context.Context, lessonID uuid.UUID) error
}

type searchRepo interface {
	Index(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, size int) ([]uuid.UUID, error)
}

type fileRepo interface {
	UploadLessonFile(ctx context.Context, courseID, lessonID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetFileURL(ctx context.Context, objectKey string) (string, error)
	DeleteFile(ctx context.Context, objectKey string) error
}

// LessonInput is the admin's add-lesson request. For video/pdf lessons File
// carries the upload; for text lessons Text carries the inline content.
type LessonInput struct {
	Title       string
	Kind        string
	Text        *string
	Filename    string
	File        io.Reader
	FileSize    int64
	ContentType string
}

type CatalogService struct {
	log        logger.Log
	courseRepo courseRepo
	lessonRepo lessonRepo
	searchRepo searchRepo
	fileRepo   fileRepo
}

func NewCatalogService(log logger.Log, c courseRepo, l lessonRepo, s searchRepo, f fileRepo) *CatalogService {
	return &CatalogService{
		log:        log,
		courseRepo: c,
		lessonRepo: l,
		searchRepo: s,
		fileRepo:   f,
	}
}

func (s *CatalogService) CreateCourse(ctx context.Context, title, description, thumbnailKey string) (*models.Course, error) {
	if strings.TrimSpace(title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}
	course := models.Course{
		Title:              strings.TrimSpace(title),
		Description:        description,
		ThumbnailObjectKey: thumbnailKey,
	}
	if _, err := s.courseRepo.NewCourse(ctx, &course); err != nil {
		return nil, err
	}

	if err := s.searchRepo.Index(ctx, course); err != nil {
		s.log.ErrorErr("failed to index course", err, "course_id", course.ID)
	}
	return &course, nil
}

func (s *CatalogService) UpdateCourse(ctx context.Context, id uuid.UUID, update models.CourseUpdate) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, app_errors.ErrEmptyTitle
		}
		course.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.ThumbnailObjectKey != nil {
		course.ThumbnailObjectKey = *update.ThumbnailObjectKey
	}

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	if err := s.searchRepo.Index(ctx, *course); err != nil {
		s.log.ErrorErr("failed to reindex course", err, "course_id", course.ID)
	}
	return course, nil
}

// DeleteCourse cascades lessons, enrollments and progress inside the storage
// transaction, then cleans up the search doc and lesson files. Object cleanup
// is best-effort: the relational cascade is the source of truth.
func (s *CatalogService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	objectKeys, err := s.courseRepo.DeleteCourse(ctx, id)
	if err != nil {
		return err
	}

	if err := s.searchRepo.Delete(ctx, id); err != nil {
		s.log.ErrorErr("failed to remove course from search index", err, "course_id", id)
	}
	for _, key := range objectKeys {
		if err := s.fileRepo.DeleteFile(ctx, key); err != nil {
			s.log.ErrorErr("failed to delete lesson file", err, "object_key", key)
		}
	}
	return nil
}

// UploadThumbnail stores the course image and records its object key on the
// course.
func (s *CatalogService) UploadThumbnail(ctx context.Context, courseID uuid.UUID, filename string, file io.Reader, size int64, contentType string) (*models.Course, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	key, err := s.fileRepo.UploadThumbnail(ctx, courseID, filename, file, size, contentType)
	if err != nil {
		s.log.ErrorErr("failed to upload thumbnail", err, "course_id", courseID)
		return nil, err
	}

	course.ThumbnailObjectKey = key
	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CatalogService) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courseRepo.CourseByID(ctx, id)
}

func (s *CatalogService) ListCourses(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.ListCourses(ctx)
}

func (s *CatalogService) SearchCourses(ctx context.Context, query string, size int) ([]models.Course, error) {
	ids, err := s.searchRepo.Search(ctx, query, size)
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, err := s.courseRepo.CourseByID(ctx, id)
		if err != nil {
			s.log.ErrorErr("search: failed to load course by id", err, "course_id", id)
			continue
		}
		courses = append(courses, *course)
	}
	return courses, nil
}

// AddLesson validates the kind/payload pairing, uploads the file for
// video/pdf lessons and stores only the returned object key.
func (s *CatalogService) AddLesson(ctx context.Context, courseID uuid.UUID, input LessonInput) (*models.Lesson, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, app_errors.ErrEmptyTitle
	}
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	var fileObjectKey *string
	switch input.Kind {
	case models.ContentKindVideo, models.ContentKindPDF:
		if input.File == nil {
			return nil, app_errors.ErrMissingFile
		}
		lessonID := uuid.New()
		key, err := s.fileRepo.UploadLessonFile(ctx, courseID, lessonID, input.Filename, input.File, input.FileSize, input.ContentType)
		if err != nil {
			s.log.ErrorErr("failed to upload lesson file", err, "course_id", courseID)
			return nil, err
		}
		fileObjectKey = &key

		lesson, err := models.NewLesson(courseID, input.Title, input.Kind, nil, fileObjectKey)
		if err != nil {
			return nil, err
		}
		lesson.ID = lessonID
		return s.lessonRepo.CreateLesson(ctx, lesson)
	default:
		lesson, err := models.NewLesson(courseID, input.Title, input.Kind, input.Text, nil)
		if err != nil {
			return nil, err
		}
		return s.lessonRepo.CreateLesson(ctx, lesson)
	}
}

// ListLessons returns the course's lessons in creation order, empty if none.
func (s *CatalogService) ListLessons(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.LessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, nil
}

func (s *CatalogService) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return err
	}

	if err := s.lessonRepo.DeleteLesson(ctx, lessonID); err != nil {
		return err
	}

	if lesson.FileObjectKey != nil {
		if err := s.fileRepo.DeleteFile(ctx, *lesson.FileObjectKey); err != nil {
			s.log.ErrorErr("failed to delete lesson file", err, "object_key", *lesson.FileObjectKey)
		}
	}
	return nil
}

// LessonFileURL returns a presigned URL for a video/pdf lesson's file.
func (s *CatalogService) LessonFileURL(ctx context.Context, lessonID uuid.UUID) (string, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return "", err
	}
	if lesson.FileObjectKey == nil {
		return "", app_errors.ErrLessonNotFound
	}
	return s.fileRepo.GetFileURL(ctx, *lesson.FileObjectKey)
}
