package course

import "errors"

var (
	// ErrInvalidRoute means the route has fewer than two points or a
	// cumulative distance that decreases somewhere.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrPayloadTooLarge means the finished course exceeds the vendor's
	// accepted point ceiling. Checked defensively before handoff.
	ErrPayloadTooLarge = errors.New("course payload too large")
)
