package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("not authorized to access this route")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("resource conflict")
	ErrNotFound           = errors.New("resource not found")
)

var (
	ErrUserNotFound     = wrap(ErrNotFound, "user not found")
	ErrBootcampNotFound = wrap(ErrNotFound, "bootcamp not found")
	ErrCourseNotFound   = wrap(ErrNotFound, "course not found")
	ErrReviewNotFound   = wrap(ErrNotFound, "review not found")

	ErrUserExists      = wrap(ErrConflict, "user already exists")
	ErrDuplicateReview = wrap(ErrConflict, "user has already reviewed this bootcamp")

	ErrInvalidResetToken = wrap(ErrValidation, "invalid or expired reset token")
	ErrAlreadyPublished  = wrap(ErrValidation, "user has already published a bootcamp")
)

// kindError carries its own message while matching a broader sentinel.
type kindError struct {
	msg  string
	kind error
}

func wrap(kind error, msg string) error { return &kindError{msg: msg, kind: kind} }

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
