package enrollment

import (
	"context"

	"github.com/sathaneem/aadhi-academy/internal/models"
	"github.com/sathaneem/aadhi-academy/pkg/logger"

	"github.com/google/uuid"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	Unenroll(ctx context.Context, enrollmentID uuid.UUID) error
	IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error)
	Roster(ctx context.Context, courseID uuid.UUID) ([]models.RosterEntry, error)
}

type studentRepo interface {
	StudentByEmail(ctx context.Context, email string) (*models.Student, error)
}

type EnrollmentService struct {
	log            logger.Log
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
	studentRepo    studentRepo
}

func NewEnrollmentService(log logger.Log, c courseRepo, e enrollmentRepo, s studentRepo) *EnrollmentService {
	return &EnrollmentService{
		log:            log,
		courseRepo:     c,
		enrollmentRepo: e,
		studentRepo:    s,
	}
}

// Enroll creates the enrollment for an existing course. The duplicate check
// happens inside the repository's constrained insert so racing enrolls for
// the same pair leave exactly one row.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.Enroll(ctx, studentID, courseID)
}

// EnrollByEmail resolves the student in the directory first, for the admin
// enroll-by-email form.
func (s *EnrollmentService) EnrollByEmail(ctx context.Context, email string, courseID uuid.UUID) (*models.Enrollment, error) {
	student, err := s.studentRepo.StudentByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.Enroll(ctx, student.ID, courseID)
}

func (s *EnrollmentService) Unenroll(ctx context.Context, enrollmentID uuid.UUID) error {
	return s.enrollmentRepo.Unenroll(ctx, enrollmentID)
}

func (s *EnrollmentService) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	return s.enrollmentRepo.IsEnrolled(ctx, studentID, courseID)
}

func (s *EnrollmentService) Roster(ctx context.Context, courseID uuid.UUID) ([]models.RosterEntry, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	entries, err := s.enrollmentRepo.Roster(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.RosterEntry{}
	}
	return entries, nil
}
