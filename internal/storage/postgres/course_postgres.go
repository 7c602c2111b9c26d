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

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

func (r *CoursePostgres) NewCourse(ctx context.Context, course *models.Course) (uuid.UUID, error) {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	query := `
		INSERT INTO courses (
			id, title, description, thumbnail_object_key, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var returnedID uuid.UUID
	err := r.db.QueryRow(
		ctx,
		query,
		course.ID,
		course.Title,
		course.Description,
		course.ThumbnailObjectKey,
		course.CreatedAt,
		course.UpdatedAt,
	).Scan(&returnedID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert course: %w", err)
	}
	return returnedID, nil
}

func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	const query = `
        SELECT id, title, description, thumbnail_object_key, created_at, updated_at
          FROM courses
         WHERE id = $1
    `
	course := &models.Course{}
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.ThumbnailObjectKey,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, err
	}

	return course, nil
}

func (r *CoursePostgres) UpdateCourse(ctx context.Context, course *models.Course) error {
	const query = `
        UPDATE courses
           SET title                = $2,
               description          = $3,
               thumbnail_object_key = $4,
               updated_at           = NOW()
         WHERE id = $1
    `
	cmdTag, err := r.db.Exec(ctx, query, course.ID, course.Title, course.Description, course.ThumbnailObjectKey)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrCourseNotFound
	}
	return nil
}

func (r *CoursePostgres) ListCourses(ctx context.Context) ([]models.Course, error) {
	query := `
        SELECT id, title, description, thumbnail_object_key, created_at, updated_at
          FROM courses
         ORDER BY created_at, id
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
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

// DeleteCourse removes a course together with its lessons, the progress rows
// referencing those lessons, and its enrollments. The whole cascade runs in a
// single transaction so a reader never observes a half-deleted course. It
// returns the object keys of lesson files so the caller can clean up object
// storage afterwards.
func (r *CoursePostgres) DeleteCourse(ctx context.Context, id uuid.UUID) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	keyRows, err := tx.Query(ctx,
		`SELECT file_object_key FROM lessons WHERE course_id = $1 AND file_object_key IS NOT NULL`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson file keys: %w", err)
	}
	var objectKeys []string
	for keyRows.Next() {
		var key string
		if err := keyRows.Scan(&key); err != nil {
			keyRows.Close()
			return nil, err
		}
		objectKeys = append(objectKeys, key)
	}
	keyRows.Close()
	if err = keyRows.Err(); err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx,
		`DELETE FROM lesson_progress WHERE lesson_id IN (SELECT id FROM lessons WHERE course_id = $1)`, id); err != nil {
		return nil, fmt.Errorf("failed to delete course progress: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM lessons WHERE course_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete course lessons: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM enrollments WHERE course_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete course enrollments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, app_errors.ErrCourseNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return objectKeys, nil
}
