package app_errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	validation := []error{ErrEmptyTitle, ErrMissingText, ErrMissingFile, ErrUnknownContentKind}
	notFound := []error{ErrCourseNotFound, ErrLessonNotFound, ErrEnrollmentNotFound, ErrStudentNotFound}

	for _, err := range validation {
		assert.True(t, IsValidation(err), err.Error())
		assert.False(t, IsNotFound(err), err.Error())
		assert.False(t, IsConflict(err), err.Error())
		assert.False(t, IsForbidden(err), err.Error())
	}

	for _, err := range notFound {
		assert.True(t, IsNotFound(err), err.Error())
		assert.False(t, IsValidation(err), err.Error())
		assert.False(t, IsConflict(err), err.Error())
		assert.False(t, IsForbidden(err), err.Error())
	}

	assert.True(t, IsConflict(ErrAlreadyEnrolled))
	assert.False(t, IsNotFound(ErrAlreadyEnrolled))

	assert.True(t, IsForbidden(ErrNotEnrolled))
	assert.False(t, IsConflict(ErrNotEnrolled))
}

func TestKindPredicates_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("enroll student: %w", ErrAlreadyEnrolled)
	assert.True(t, IsConflict(wrapped))

	wrapped = fmt.Errorf("load course: %w", ErrCourseNotFound)
	assert.True(t, IsNotFound(wrapped))
}

func TestKindPredicates_ForeignError(t *testing.T) {
	err := errors.New("connection reset")
	assert.False(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.False(t, IsForbidden(err))
}
