package model

import "time"

// Vendor represents a supplier whose products appear in sales reports.
type Vendor struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;index"`
	ContactEmail string    `json:"contact_email,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
