package entities

import "errors"

// Sentinel errors for entity construction. Callers should use errors.Is to
// match. The constructors return them unwrapped; the Featurizer re-validates
// coordinates and windows with its own sentinels wrapped in
// engineerr.InvalidInput.
var (
	// ErrEmptyID indicates an entity was constructed with an empty identifier.
	ErrEmptyID = errors.New("entities: empty identifier")

	// ErrBadCoordinate indicates a coordinate outside valid lat/lon ranges.
	ErrBadCoordinate = errors.New("entities: malformed coordinate")

	// ErrNegativeTime indicates a minute-since-midnight value was negative.
	ErrNegativeTime = errors.New("entities: negative time value")

	// ErrInvertedWindow indicates a time window's lower bound exceeds its upper bound.
	ErrInvertedWindow = errors.New("entities: inverted time window")

	// ErrNonPositiveCapacity indicates a technician capacity <= 0.
	ErrNonPositiveCapacity = errors.New("entities: non-positive capacity")

	// ErrNonPositiveRating indicates a service rating <= 0, which would make
	// the span-cost coefficient (cost / rating) undefined.
	ErrNonPositiveRating = errors.New("entities: non-positive service rating")

	// ErrNegativeDemand indicates an order's demand units were negative.
	ErrNegativeDemand = errors.New("entities: negative demand")
)
