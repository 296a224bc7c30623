package util

import (
	"errors"
	"fmt"
)

var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrChapterNotFound      = errors.New("chapter not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrOptionNotFound       = errors.New("task option not found")
	ErrEnrollmentNotAllowed = errors.New("enrollment not allowed")
	ErrPermissionDenied     = errors.New("permission denied")
)

// 报名被拒的原因码
const (
	ReasonCourseNotPublished   = "course_not_published"
	ReasonPrerequisitesMissing = "prerequisites_not_completed"
)

// EnrollmentRejectedError 前置条件不满足, errors.Is 可匹配 ErrEnrollmentNotAllowed
type EnrollmentRejectedError struct {
	Reason string
}

func (e *EnrollmentRejectedError) Error() string {
	return fmt.Sprintf("enrollment not allowed: %s", e.Reason)
}

func (e *EnrollmentRejectedError) Is(target error) bool {
	return target == ErrEnrollmentNotAllowed
}

// ValidationError 请求内容不合法
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrChapterNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrOptionNotFound)
}
