package model

import "time"

// Category is a user-defined transaction category. A transaction may
// reference zero or one category; "uncategorized" is a normal state,
// not an error.
type Category struct {
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Name      string     `json:"name"`
}
