// Package usecase implements the business logic for the user feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by id or slug.
	ErrUserNotFound = errors.New("user not found")

	// ErrNameRequired is returned when registration is attempted without a name.
	ErrNameRequired = errors.New("name is required")

	// ErrSlugTaken is returned when a write would violate the one-user-per-slug
	// invariant, e.g. renaming a profile to a name another user already holds.
	ErrSlugTaken = errors.New("slug already taken")

	// ErrNoFields is returned when a profile update submits nothing to change.
	ErrNoFields = errors.New("no fields to update")
)
