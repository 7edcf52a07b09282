package domain

import "errors"

// Bet validation errors
var (
	ErrDuplicateSelection = errors.New("the three employee selections must be distinct")
	ErrBonusNotSelected   = errors.New("chiringuito bonus must be on one of the three selected employees")
)

// Edition errors
var (
	ErrEditionNotOpen          = errors.New("edition is not open")
	ErrEditionStillOpen        = errors.New("edition is still open")
	ErrEditionNotFound         = errors.New("edition not found")
	ErrInvalidStatusTransition = errors.New("invalid edition status transition")
	ErrEditionNotFinished      = errors.New("edition is not finished")
)

// Participant errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrPaymentRequired     = errors.New("payment must be confirmed before betting")
)

// Employee errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlreadyResigned  = errors.New("employee has already resigned")
)
