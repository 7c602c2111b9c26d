package models

import (
	"time"

	"github.com/google/uuid"
)

type Enrollment struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	CourseID  uuid.UUID `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RosterEntry is an enrollment joined with the student's directory record,
// shown on the admin roster page.
type RosterEntry struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	StudentID    uuid.UUID `json:"student_id"`
	Email        string    `json:"email"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}
