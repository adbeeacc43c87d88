package domain

import "errors"

// Domain-specific errors for page state validation.
var (
	// Rating errors
	ErrBreedNotFound = errors.New("breed not found")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// Tab errors
	ErrInvalidTab = errors.New("invalid tab")

	// Fun fact errors
	ErrUnknownFact = errors.New("unknown fun fact")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session id")

	// State errors
	ErrCorruptState = errors.New("stored page state is inconsistent")
)
