package app_errors

import "errors"

// Validation
var ErrEmptyTitle = errors.New("title is required")
var ErrMissingText = errors.New("text content is required for text lessons")
var ErrMissingFile = errors.New("a file is required for video and pdf lessons")
var ErrUnknownContentKind = errors.New("unknown content kind")

// Not found
var ErrCourseNotFound = errors.New("course not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrStudentNotFound = errors.New("student not found")

// Conflict
var ErrAlreadyEnrolled = errors.New("student is already enrolled in this course")

// Forbidden
var ErrNotEnrolled = errors.New("you are not enrolled in this course")

// IsValidation reports whether err is a malformed-input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrMissingText) ||
		errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrUnknownContentKind)
}

// IsNotFound reports whether err references a nonexistent entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyEnrolled)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotEnrolled)
}
