package turndb

import "errors"

// The pipeline stages are all deterministic pure functions, so none of these
// are ever retried; they map straight onto response statuses.
var(
	// ErrInvalidArgument: bad vehicle parameters or a non-positive sampling
	// step. Rejected before any geometry work begins.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound: a road anchor is missing, or the two roads share no
	// intersection. Terminal; surfaced verbatim to the caller.
	ErrNotFound = errors.New("not found")

	// ErrNoPathFound: zero feasible Dubins words. Any two finite poses admit
	// at least one word, so this is an invariant violation, not a user error.
	ErrNoPathFound = errors.New("no path found")
)

func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
func IsNoPathFound(err error) bool { return errors.Is(err, ErrNoPathFound) }
