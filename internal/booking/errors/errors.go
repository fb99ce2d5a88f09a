package errors

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")

	ErrProposalNotFound = errors.New("proposal not found")

	ErrRefNotFound = errors.New("booking reference not found")

	ErrInvalidID = errors.New("invalid reservation ID format")
)
