package progress

import (
	"context"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
)

type lessonRepo interface {
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
}

type progressRepo interface {
	MarkCompleted(ctx context.Context, studentID, lessonID uuid.UUID) error
	CompletedLessons(ctx context.Context, studentID, courseID uuid.UUID) ([]uuid.UUID, error)
}

type ProgressService struct {
	log            logger.Log
	lessonRepo     lessonRepo
	enrollmentRepo enrollmentRepo
	progressRepo   progressRepo
}

func NewProgressService(log logger.Log, l lessonRepo, e enrollmentRepo, p progressRepo) *ProgressService {
	return &ProgressService{
		log:            log,
		lessonRepo:     l,
		enrollmentRepo: e,
		progressRepo:   p,
	}
}

// MarkCompleted records a completed lesson for an enrolled student. Repeats
// are a no-op: the storage upsert keeps the first completion timestamp.
func (s *ProgressService) MarkCompleted(ctx context.Context, studentID, lessonID uuid.UUID) error {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, lesson.CourseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return app_errors.ErrNotEnrolled
	}

	return s.progressRepo.MarkCompleted(ctx, studentID, lessonID)
}

// GetProgress returns completion for every lesson in the course; lessons with
// no record are false. The enrollment gate runs before any course data is
// touched, so a non-enrolled student cannot probe course existence.
func (s *ProgressService) GetProgress(ctx context.Context, studentID, courseID uuid.UUID) (map[uuid.UUID]bool, error) {
	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, app_errors.ErrNotEnrolled
	}

	lessons, err := s.lessonRepo.LessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progressRepo.CompletedLessons(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	completedSet := make(map[uuid.UUID]struct{}, len(completed))
	for _, id := range completed {
		completedSet[id] = struct{}{}
	}

	result := make(map[uuid.UUID]bool, len(lessons))
	for _, lesson := range lessons {
		_, done := completedSet[lesson.ID]
		result[lesson.ID] = done
	}
	return result, nil
}
