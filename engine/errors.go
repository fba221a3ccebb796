package engine

import "errors"

var (
	// ErrSurfaceUnavailable is returned when the render surface has no drawable area
	ErrSurfaceUnavailable = errors.New("surface unavailable")

	// ErrLocked is returned when a lockout or cool-down blocks the action
	ErrLocked = errors.New("locked")

	// ErrBusy is returned while a click log is being evaluated
	ErrBusy = errors.New("evaluation in progress")

	// ErrNoChallenge is returned when no challenge has been presented yet
	ErrNoChallenge = errors.New("no challenge presented")
)
