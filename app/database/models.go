package database

import (
	"time"
)

// Preference is a stored preference document
type Preference struct {
	StoreName string
	Document  string // JSON encoded preference object
	CreatedAt time.Time
	UpdatedAt time.Time
}
