package usecase

import (
	"errors"

	"movie-reviews/pkg/utils"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrMovieNotFound  = errors.New("movie not found")
	ErrReviewNotFound = errors.New("review not found")

	ErrAlreadyReviewed    = errors.New("user already has a review for this movie")
	ErrAccessDenied       = errors.New("access to resources denied")
	ErrEmailTaken         = errors.New("credentials taken")
	ErrInvalidCredentials = errors.New("credentials incorrect")
)

// ValidationError carries per-field messages for input the service refused.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

// validate runs the struct's tags and wraps failures in a ValidationError.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
