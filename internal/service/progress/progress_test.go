package progress

import (
	"context"
	"testing"
	"time"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLessonRepo struct {
	lessons map[uuid.UUID]models.Lesson
}

func (s *stubLessonRepo) LessonByID(_ context.Context, id uuid.UUID) (*models.Lesson, error) {
	l, ok := s.lessons[id]
	if !ok {
		return nil, app_errors.ErrLessonNotFound
	}
	return &l, nil
}

func (s *stubLessonRepo) LessonsByCourse(_ context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	var result []models.Lesson
	for _, l := range s.lessons {
		if l.CourseID == courseID {
			result = append(result, l)
		}
	}
	return result, nil
}

type stubEnrollmentRepo struct {
	enrolled map[uuid.UUID]map[uuid.UUID]bool
}

func (s *stubEnrollmentRepo) IsEnrolled(_ context.Context, studentID, courseID uuid.UUID) (bool, error) {
	return s.enrolled[studentID][courseID], nil
}

type progressKey struct {
	studentID uuid.UUID
	lessonID  uuid.UUID
}

// fakeProgressRepo mimics the constrained upsert: a repeat insert for the
// same key is a no-op and keeps the first timestamp.
type fakeProgressRepo struct {
	records map[progressKey]models.ProgressRecord
	lessons *stubLessonRepo
}

func (f *fakeProgressRepo) MarkCompleted(_ context.Context, studentID, lessonID uuid.UUID) error {
	key := progressKey{studentID, lessonID}
	if _, exists := f.records[key]; exists {
		return nil
	}
	f.records[key] = models.ProgressRecord{
		StudentID:   studentID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: time.Now().UTC(),
	}
	return nil
}

func (f *fakeProgressRepo) CompletedLessons(_ context.Context, studentID, courseID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key, rec := range f.records {
		if key.studentID != studentID || !rec.Completed {
			continue
		}
		if l, ok := f.lessons.lessons[key.lessonID]; ok && l.CourseID == courseID {
			ids = append(ids, key.lessonID)
		}
	}
	return ids, nil
}

type fixture struct {
	svc       *ProgressService
	lessons   *stubLessonRepo
	enrolls   *stubEnrollmentRepo
	progress  *fakeProgressRepo
	studentID uuid.UUID
	courseID  uuid.UUID
}

func newFixture() *fixture {
	lessons := &stubLessonRepo{lessons: map[uuid.UUID]models.Lesson{}}
	enrolls := &stubEnrollmentRepo{enrolled: map[uuid.UUID]map[uuid.UUID]bool{}}
	progress := &fakeProgressRepo{records: map[progressKey]models.ProgressRecord{}, lessons: lessons}
	return &fixture{
		svc:       NewProgressService(logger.New("local"), lessons, enrolls, progress),
		lessons:   lessons,
		enrolls:   enrolls,
		progress:  progress,
		studentID: uuid.New(),
		courseID:  uuid.New(),
	}
}

func (f *fixture) addLesson(title string) models.Lesson {
	text := "notes"
	lesson, err := models.NewLesson(f.courseID, title, models.ContentKindText, &text, nil)
	if err != nil {
		panic(err)
	}
	f.lessons.lessons[lesson.ID] = lesson
	return lesson
}

func (f *fixture) enroll() {
	f.enrolls.enrolled[f.studentID] = map[uuid.UUID]bool{f.courseID: true}
}

func TestMarkCompleted_LessonNotFound(t *testing.T) {
	f := newFixture()
	f.enroll()

	err := f.svc.MarkCompleted(context.Background(), f.studentID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrLessonNotFound)
}

func TestMarkCompleted_NotEnrolled(t *testing.T) {
	f := newFixture()
	lesson := f.addLesson("Intro")

	err := f.svc.MarkCompleted(context.Background(), f.studentID, lesson.ID)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)
	assert.Empty(t, f.progress.records)
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	f := newFixture()
	f.enroll()
	lesson := f.addLesson("Intro")

	require.NoError(t, f.svc.MarkCompleted(context.Background(), f.studentID, lesson.ID))
	first := f.progress.records[progressKey{f.studentID, lesson.ID}]

	require.NoError(t, f.svc.MarkCompleted(context.Background(), f.studentID, lesson.ID))

	assert.Len(t, f.progress.records, 1)
	second := f.progress.records[progressKey{f.studentID, lesson.ID}]
	assert.True(t, second.Completed)
	assert.Equal(t, first.CompletedAt, second.CompletedAt, "repeat completion must keep the original timestamp")
}

func TestGetProgress_NotEnrolled(t *testing.T) {
	f := newFixture()
	f.addLesson("Intro")

	_, err := f.svc.GetProgress(context.Background(), f.studentID, f.courseID)
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)

	// same answer for a course that does not exist at all
	_, err = f.svc.GetProgress(context.Background(), f.studentID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrNotEnrolled)
}

func TestGetProgress_DefaultsToFalse(t *testing.T) {
	f := newFixture()
	f.enroll()
	done := f.addLesson("Done")
	pending := f.addLesson("Pending")

	require.NoError(t, f.svc.MarkCompleted(context.Background(), f.studentID, done.ID))

	result, err := f.svc.GetProgress(context.Background(), f.studentID, f.courseID)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.True(t, result[done.ID])
	assert.False(t, result[pending.ID])
}
