package models

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for a missing or malformed required input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned by point lookups that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrPersistence means the backend returned an unusable generated identifier.
	ErrPersistence = errors.New("persistence failure")
	// ErrUnsupportedVariant is returned for a notification outside the known set.
	ErrUnsupportedVariant = errors.New("unsupported notification variant")
	// ErrNoHistory is returned when a revert finds no checkpoints.
	ErrNoHistory = errors.New("no checkpoint history")
)
