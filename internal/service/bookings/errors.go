package bookings

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidBooking  = errors.New("invalid booking")
	ErrRateLimited     = errors.New("rate limited")
)
