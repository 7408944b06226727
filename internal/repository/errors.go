package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrResourceClaimed is returned by BindIfAvailable when the resource
	// was no longer available, meaning a concurrent request claimed it
	// between eligibility listing and binding.
	ErrResourceClaimed = errors.New("resource no longer available")
)
