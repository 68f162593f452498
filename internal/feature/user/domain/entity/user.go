// Package entity defines the domain entities for the user feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the display name. It is not unique by itself; uniqueness is
	// enforced through Slug.
	Name string `gorm:"size:255;not null"`

	// Status is free-form profile text. Nil when the user never supplied one.
	Status *string `gorm:"size:255"`

	// Slug is the normalized form of Name (lowercase, hyphen-joined) and acts
	// as the business key: at most one user exists per slug.
	Slug string `gorm:"uniqueIndex;size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
