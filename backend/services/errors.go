package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseExists        = errors.New("course already exists")
	ErrTopicNotFound       = errors.New("topic not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrLessonLocked        = errors.New("lesson is locked")
	ErrAlreadyEnrolled     = errors.New("already enrolled in this course")
	ErrNotEnrolled         = errors.New("not enrolled in this course")
	ErrNoAssessment        = errors.New("course has no assessment")
	ErrInvalidAnswer       = errors.New("invalid answer")
	ErrAssessmentSubmitted = errors.New("assessment already submitted, retake to try again")
	ErrNoResult            = errors.New("assessment not completed")
	ErrCertificateLocked   = errors.New("certificate requires a passed assessment")
	ErrNoteNotFound        = errors.New("note not found")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbiddenRole       = errors.New("insufficient role")
)

// ValidationError carries per-field messages for rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
