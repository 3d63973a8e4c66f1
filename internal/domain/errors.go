package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrCourseRequired   = errors.New("course name is required")
	ErrEmptyDocument    = errors.New("document contains no extractable text")
	ErrMalformedOutput  = errors.New("model returned malformed output")
	ErrInvalidFile      = errors.New("invalid file")
	ErrDownloadURLEmpty = errors.New("download url is required")
)

// NoQuestionsError is returned when a practice-exam request matches no stored
// questions. KnownCourses carries the stored course names as a diagnostic aid.
type NoQuestionsError struct {
	Course       string
	KnownCourses []string
}

func (e *NoQuestionsError) Error() string {
	return fmt.Sprintf("no questions found for course %q", e.Course)
}
