package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ThumbnailObjectKey string    `json:"thumbnail_object_key,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// CourseUpdate carries the admin-editable course fields. A nil field is left
// unchanged.
type CourseUpdate struct {
	Title              *string `json:"title,omitempty"`
	Description        *string `json:"description,omitempty"`
	ThumbnailObjectKey *string `json:"thumbnail_object_key,omitempty"`
}
