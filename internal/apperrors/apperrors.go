package apperrors

import (
	"errors"
	"fmt"

	"github.com/mtsierradev/servicio-social/internal/domain"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrForbidden     = errors.New("operation not permitted")
	ErrUnauthorized  = errors.New("missing or invalid credentials")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	// ErrAlreadyReviewed guards the state machine: an activity leaves
	// Pending exactly once.
	ErrAlreadyReviewed = errors.New("activity has already been reviewed")

	// ErrCommentRequired is returned when a rejection arrives without a
	// reviewer comment.
	ErrCommentRequired = errors.New("a comment is required when rejecting an activity")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// HoursCapError reports a create/edit that would push a student past the
// 80-hour cap. It carries the breakdown the caller needs to build a precise
// message.
type HoursCapError struct {
	ApprovedHours  float64
	PendingHours   float64
	CandidateHours float64
}

func (e *HoursCapError) committed() int64 {
	return domain.Centihours(e.ApprovedHours) + domain.Centihours(e.PendingHours)
}

func (e *HoursCapError) Committed() float64 { return float64(e.committed()) / 100 }

func (e *HoursCapError) Remaining() float64 {
	return float64(domain.MaxTotalCentihours-e.committed()) / 100
}

func (e *HoursCapError) Error() string {
	return fmt.Sprintf(
		"cannot exceed %.0f total hours: %.2f approved and %.2f pending, %.2f remaining",
		domain.MaxTotalHours, e.ApprovedHours, e.PendingHours, e.Remaining(),
	)
}

func (e *HoursCapError) Is(target error) bool { return target == ErrValidation }

// EmailTakenError is returned on registration with an email that already has
// an account.
type EmailTakenError struct{ Email string }

func (e *EmailTakenError) Error() string {
	return fmt.Sprintf("an account with email '%s' already exists", e.Email)
}

func (e *EmailTakenError) Is(target error) bool { return target == ErrAlreadyExists }
