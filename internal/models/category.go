package models

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryChanges holds the fields of a partial category update. Nil fields are left untouched.
type CategoryChanges struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether no field is being changed.
func (c CategoryChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil
}
