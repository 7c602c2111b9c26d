package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProgressPostgres struct {
	db *pgxpool.Pool
}

func NewProgressPostgres(db *pgxpool.Pool) *ProgressPostgres {
	return &ProgressPostgres{db: db}
}

// MarkCompleted upserts a completed progress row. Repeat calls hit the
// (student_id, lesson_id) primary key and DO NOTHING, so completion is
// idempotent and the original completed_at timestamp is retained.
func (r *ProgressPostgres) MarkCompleted(ctx context.Context, studentID, lessonID uuid.UUID) error {
	query := `
		INSERT INTO lesson_progress (student_id, lesson_id, completed, completed_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (student_id, lesson_id) DO NOTHING
	`
	now := time.Now().UTC()
	_, err := r.db.Exec(ctx, query, studentID, lessonID, now)
	if err != nil {
		return fmt.Errorf("failed to mark lesson completed: %w", err)
	}
	return nil
}

// CompletedLessons returns the IDs of the student's completed lessons within
// one course.
func (r *ProgressPostgres) CompletedLessons(ctx context.Context, studentID, courseID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT p.lesson_id
		  FROM lesson_progress p
		  JOIN lessons l ON l.id = p.lesson_id
		 WHERE p.student_id = $1
		   AND l.course_id = $2
		   AND p.completed
	`
	rows, err := r.db.Query(ctx, query, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed lessons: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
