package models

import (
	"strings"
	"time"

	"github.com/sathaneem/aadhi-academy/internal/app_errors"

	"github.com/google/uuid"
)

const (
	ContentKindText  = "text"
	ContentKindVideo = "video"
	ContentKindPDF   = "pdf"
)

// Lesson is a single unit of course content. The payload is a tagged variant:
// text lessons carry inline Text, video/pdf lessons carry a FileObjectKey
// pointing into object storage. Lessons are never edited in place.
type Lesson struct {
	ID            uuid.UUID `json:"id"`
	CourseID      uuid.UUID `json:"course_id"`
	Title         string    `json:"title"`
	Kind          string    `json:"kind"`
	Text          *string   `json:"text,omitempty"`
	FileObjectKey *string   `json:"file_object_key,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewLesson validates the kind/payload pairing at construction so that an
// inconsistent lesson can never reach storage.
func NewLesson(courseID uuid.UUID, title, kind string, text, fileObjectKey *string) (Lesson, error) {
	if strings.TrimSpace(title) == "" {
		return Lesson{}, app_errors.ErrEmptyTitle
	}

	switch kind {
	case ContentKindText:
		if text == nil || strings.TrimSpace(*text) == "" {
			return Lesson{}, app_errors.ErrMissingText
		}
		fileObjectKey = nil
	case ContentKindVideo, ContentKindPDF:
		if fileObjectKey == nil || *fileObjectKey == "" {
			return Lesson{}, app_errors.ErrMissingFile
		}
		text = nil
	default:
		return Lesson{}, app_errors.ErrUnknownContentKind
	}

	return Lesson{
		ID:            uuid.New(),
		CourseID:      courseID,
		Title:         strings.TrimSpace(title),
		Kind:          kind,
		Text:          text,
		FileObjectKey: fileObjectKey,
	}, nil
}
