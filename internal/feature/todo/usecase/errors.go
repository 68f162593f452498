// Package usecase implements the business logic for the todo feature.
package usecase

import "errors"

var (
	// ErrTodoNotFound is returned when a todo cannot be found within the
	// caller's own items. A todo owned by someone else is indistinguishable
	// from one that does not exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrActivityRequired is returned when a todo is created without an activity.
	ErrActivityRequired = errors.New("activity is required")

	// ErrDateRequired is returned when a todo is created without a date.
	ErrDateRequired = errors.New("date is required")

	// ErrInvalidDate is returned when a submitted date is not a valid
	// YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("date is invalid")
)
