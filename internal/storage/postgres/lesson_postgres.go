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

type LessonPostgres struct {
	db *pgxpool.Pool
}

func NewLessonPostgres(db *pgxpool.Pool) *LessonPostgres {
	return &LessonPostgres{db: db}
}

func (r *LessonPostgres) CreateLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	lesson.CreatedAt = time.Now().UTC()

	insertQuery := `
    INSERT INTO lessons (
        id, course_id, title, kind, text, file_object_key, created_at
    ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.Exec(ctx, insertQuery,
		lesson.ID, lesson.CourseID, lesson.Title, lesson.Kind,
		lesson.Text, lesson.FileObjectKey, lesson.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert lesson: %w", err)
	}
	return &lesson, nil
}

func (r *LessonPostgres) LessonByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `
    SELECT id, course_id, title, kind, text, file_object_key, created_at
      FROM lessons
     WHERE id = $1
    `
	var lesson models.Lesson
	row := r.db.QueryRow(ctx, query, id)
	err := row.Scan(
		&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Kind,
		&lesson.Text, &lesson.FileObjectKey, &lesson.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

// LessonsByCourse returns a course's lessons in creation order.
func (r *LessonPostgres) LessonsByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Lesson, error) {
	query := `
        SELECT id, course_id, title, kind, text, file_object_key, created_at
          FROM lessons
         WHERE course_id = $1
         ORDER BY created_at, id
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons by course: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(
			&l.ID, &l.CourseID, &l.Title, &l.Kind, &l.Text, &l.FileObjectKey, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lessons, nil
}

// DeleteLesson removes a lesson and its progress rows in one transaction.
func (r *LessonPostgres) DeleteLesson(ctx context.Context, lessonID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM lesson_progress WHERE lesson_id = $1`, lessonID); err != nil {
		return fmt.Errorf("failed to delete lesson progress: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, lessonID)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return app_errors.ErrLessonNotFound
	}

	return tx.Commit(ctx)
}
