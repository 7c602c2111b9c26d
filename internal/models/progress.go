package models

import (
	"time"

	"github.com/google/uuid"
)

type ProgressRecord struct {
	StudentID   uuid.UUID `json:"student_id"`
	LessonID    uuid.UUID `json:"lesson_id"`
	Completed   bool      `json:"completed"`
	CompletedAt time.Time `json:"completed_at"`
}

// CourseView is the per-course read model returned to an enrolled student.
type CourseView struct {
	Course         Course             `json:"course"`
	Lessons        []Lesson           `json:"lessons"`
	Progress       map[uuid.UUID]bool `json:"progress"`
	CompletedCount int                `json:"completed_count"`
	TotalCount     int                `json:"total_count"`
	Percentage     int                `json:"percentage"`
}

// CourseSummary is one dashboard row, ordered by enrollment creation.
type CourseSummary struct {
	Course         Course `json:"course"`
	CompletedCount int    `json:"completed_count"`
	TotalCount     int    `json:"total_count"`
	Percentage     int    `json:"percentage"`
}
