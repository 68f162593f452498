// Package entity defines the domain entities for the todo feature.
package entity

import (
	"time"

	userentity "todo_backend/internal/feature/user/domain/entity"
)

// Todo represents a single to-do item owned by exactly one user.
type Todo struct {
	// ID is the unique identifier for the todo.
	ID uint `gorm:"primaryKey"`

	// Activity is the free-text description of the task.
	Activity string `gorm:"type:text;not null"`

	// Date is the calendar date the task is scheduled for. Only the date part
	// is meaningful; the time-of-day is always midnight UTC.
	Date time.Time `gorm:"not null"`

	// Important and Completed default to false.
	Important bool `gorm:"not null;default:false"`
	Completed bool `gorm:"not null;default:false"`

	// OwnerID is the foreign key to the owning user. Deleting the user
	// deletes their todos.
	OwnerID uint            `gorm:"index;not null"`
	Owner   userentity.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
