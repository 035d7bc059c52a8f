package invoice

import "errors"

var (
	ErrMissingFields       = errors.New("required fields are missing")
	ErrInvalidPrice        = errors.New("price must be greater than 0")
	ErrScheduleDateMissing = errors.New("schedule date is required when scheduling is enabled")
	ErrInvalidScheduleDate = errors.New("schedule date is not a valid date")
	ErrInvalidPaymentLink  = errors.New("payment link is not a valid url")
	ErrInvalidBookingID    = errors.New("booking id must be a positive integer")
	ErrBookingNotFound     = errors.New("booking not found")

	// ErrPersistence marks a local storage failure. When it follows a
	// successful gateway call the remote payment link has no local booking.
	ErrPersistence = errors.New("failed to save booking")
)
