package models

import "time"

// Category groups tasks. A category either belongs to one user (OwnerID set)
// or is a shared default visible to everyone (IsDefault).
type Category struct {
	ID        string
	Name      string
	Type      string
	OwnerID   string // empty for shared default categories
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
