package match

import "errors"

var (
	// ErrInvalidArgument is returned before any matching starts when the
	// inputs or options cannot be compared
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownAlgorithm is returned for an unregistered strategy
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)
