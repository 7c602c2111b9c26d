package postgres

import (
	"context"
	"errors"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"
	"github.com/sathaneem/aadhi-academy/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StudentPostgres struct {
	db *pgxpool.Pool
}

func NewStudentPostgres(db *pgxpool.Pool) *StudentPostgres {
	return &StudentPostgres{db: db}
}

func (r *StudentPostgres) StudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT id, email, is_admin FROM students WHERE email = $1`

	var student models.Student
	err := r.db.QueryRow(ctx, query, email).Scan(&student.ID, &student.Email, &student.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentPostgres) StudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	query := `SELECT id, email, is_admin FROM students WHERE id = $1`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(&student.ID, &student.Email, &student.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}
