package access

import (
	"context"
	"math"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type lessonRepo interface {
	LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error)
}

type enrollmentRepo interface {
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]models.Course, error)
}

type progressRepo interface {
	CompletedLessons(ctx context.Context, studentID, courseID uuid.UUID) ([]uuid.UUID, error)
}

type fileRepo interface {
	GetFileURL(ctx context.Context, objectKey string) (string, error)
}

// AccessService is the read facade composing the catalog, enrollment and
// progress stores. It performs no writes and propagates lower-layer errors
// unchanged.
type AccessService struct {
	log            logger.Log
	courseRepo     courseRepo
	lessonRepo     lessonRepo
	enrollmentRepo enrollmentRepo
	progressRepo   progressRepo
	fileRepo       fileRepo
}

func NewAccessService(log logger.Log, c courseRepo, l lessonRepo, e enrollmentRepo, p progressRepo, f fileRepo) *AccessService {
	return &AccessService{
		log:            log,
		courseRepo:     c,
		lessonRepo:     l,
		enrollmentRepo: e,
		progressRepo:   p,
		fileRepo:       f,
	}
}

// CourseView returns the enrolled student's view of one course: ordered
// lessons, per-lesson completion and the completion percentage.
func (s *AccessService) CourseView(ctx context.Context, studentID, courseID uuid.UUID) (*models.CourseView, error) {
	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, app_errors.ErrNotEnrolled
	}

	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	lessons, progressMap, completedCount, err := s.courseProgress(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	return &models.CourseView{
		Course:         *course,
		Lessons:        lessons,
		Progress:       progressMap,
		CompletedCount: completedCount,
		TotalCount:     len(lessons),
		Percentage:     percentage(completedCount, len(lessons)),
	}, nil
}

// Dashboard returns one summary per enrollment, in enrollment order.
func (s *AccessService) Dashboard(ctx context.Context, studentID uuid.UUID) ([]models.CourseSummary, error) {
	courses, err := s.enrollmentRepo.EnrolledCourses(ctx, studentID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.CourseSummary, 0, len(courses))
	for _, course := range courses {
		lessons, _, completedCount, err := s.courseProgress(ctx, studentID, course.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, models.CourseSummary{
			Course:         course,
			CompletedCount: completedCount,
			TotalCount:     len(lessons),
			Percentage:     percentage(completedCount, len(lessons)),
		})
	}
	return summaries, nil
}

// LessonFileURL hands an enrolled student a presigned URL for a video/pdf
// lesson. The enrollment gate runs first, like every other student read.
func (s *AccessService) LessonFileURL(ctx context.Context, studentID, lessonID uuid.UUID) (string, error) {
	lesson, err := s.lessonRepo.LessonByID(ctx, lessonID)
	if err != nil {
		return "", err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, lesson.CourseID)
	if err != nil {
		return "", err
	}
	if !enrolled {
		return "", app_errors.ErrNotEnrolled
	}

	if lesson.FileObjectKey == nil {
		return "", app_errors.ErrLessonNotFound
	}
	return s.fileRepo.GetFileURL(ctx, *lesson.FileObjectKey)
}

func (s *AccessService) courseProgress(ctx context.Context, studentID, courseID uuid.UUID) ([]models.Lesson, map[uuid.UUID]bool, int, error) {
	lessons, err := s.lessonRepo.LessonsByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, 0, err
	}
	completed, err := s.progressRepo.CompletedLessons(ctx, studentID, courseID)
	if err != nil {
		return nil, nil, 0, err
	}

	completedSet := make(map[uuid.UUID]struct{}, len(completed))
	for _, id := range completed {
		completedSet[id] = struct{}{}
	}

	progressMap := make(map[uuid.UUID]bool, len(lessons))
	completedCount := 0
	for _, lesson := range lessons {
		_, done := completedSet[lesson.ID]
		progressMap[lesson.ID] = done
		if done {
			completedCount++
		}
	}
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return lessons, progressMap, completedCount, nil
}

// percentage is round(100 * completed / total); a course with no lessons is 0.
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
