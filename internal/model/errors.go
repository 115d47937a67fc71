package model

import "errors"

// Domain failures surfaced by the booking ledger. Callers match them with
// errors.Is; repositories and services may wrap them with extra context.
var (
	// Validation errors
	ErrInvalidTimeRange    = errors.New("slot end time must be after start time")
	ErrUnauthorizedTeacher = errors.New("slot teacher does not hold the teacher role")
	ErrRatingOutOfRange    = errors.New("review rating must be between 1 and 5")
	ErrInvalidCapacity     = errors.New("slot capacity must be at least 1")
	ErrSlotInactive        = errors.New("slot is not active")

	// Conflict errors
	ErrDuplicateRequest = errors.New("student already has a request for this slot")
	ErrDuplicateReview  = errors.New("lesson already has a review")
	ErrSlotFull         = errors.New("slot has no remaining capacity")

	// State errors
	ErrInvalidTransition = errors.New("request is not pending")

	ErrNotFound = errors.New("not found")

	// ErrConcurrentModification means the operation lost a race against a
	// concurrent transaction and may be retried by the caller.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrUnauthorizedTeacher) ||
		errors.Is(err, ErrRatingOutOfRange) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrSlotInactive)
}

// IsConflict reports whether err is a uniqueness or capacity conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateRequest) ||
		errors.Is(err, ErrDuplicateReview) ||
		errors.Is(err, ErrSlotFull)
}
