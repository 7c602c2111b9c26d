package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

// Enroll inserts the enrollment in a single constrained write. The
// UNIQUE(student_id, course_id) index makes concurrent duplicate enrolls race
// safely: exactly one insert wins, the loser gets ErrAlreadyEnrolled.
func (r *EnrollmentPostgres) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	enrollment := models.Enrollment{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now().UTC(),
	}
	query := `
        INSERT INTO enrollments (id, student_id, course_id, created_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := r.db.Exec(ctx, query, enrollment.ID, enrollment.StudentID, enrollment.CourseID, enrollment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, app_errors.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}
	return &enrollment, nil
}

// Unenroll removes the enrollment and the student's progress rows for that
// course's lessons in one transaction.
func (r *EnrollmentPostgres) Unenroll(ctx context.Context, enrollmentID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var studentID, courseID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT student_id, course_id FROM enrollments WHERE id = $1`, enrollmentID,
	).Scan(&studentID, &courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return app_errors.ErrEnrollmentNotFound
		}
		return err
	}

	if _, err = tx.Exec(ctx, `
        DELETE FROM lesson_progress
         WHERE student_id = $1
           AND lesson_id IN (SELECT id FROM lessons WHERE course_id = $2)
    `, studentID, courseID); err != nil {
		return fmt.Errorf("failed to delete student progress: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, enrollmentID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *EnrollmentPostgres) IsEnrolled(ctx context.Context, studentID, courseID uuid.UUID) (bool, error) {
	var enrolled bool
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`
	if err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}

// Roster lists a course's enrollments joined with the student directory, in
// enrollment order.
func (r *EnrollmentPostgres) Roster(ctx context.Context, courseID uuid.UUID) ([]models.RosterEntry, error) {
	query := `
        SELECT e.id, e.student_id, s.email, e.created_at
          FROM enrollments e
          JOIN students s ON s.id = e.student_id
         WHERE e.course_id = $1
         ORDER BY e.created_at, e.id
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	var entries []models.RosterEntry
	for rows.Next() {
		var e models.RosterEntry
		if err := rows.Scan(&e.EnrollmentID, &e.StudentID, &e.Email, &e.EnrolledAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnrolledCourses returns the student's courses ordered by when they enrolled.
func (r *EnrollmentPostgres) EnrolledCourses(ctx context.Context, studentID uuid.UUID) ([]models.Course, error) {
	query := `
        SELECT c.id, c.title, c.description, c.thumbnail_object_key, c.created_at, c.updated_at
          FROM courses c
          JOIN enrollments e ON e.course_id = c.id
         WHERE e.student_id = $1
         ORDER BY e.created_at, e.id
    `
	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.ThumbnailObjectKey, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}
