package models

import "time"

// User holds the local credential material. Deployments that delegate login to
// an external identity provider never populate PasswordHash.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"` // never return in JSON
	RegisteredAt time.Time `json:"registeredAt"`
}

// Customer is the booking-capable specialization of User.
type Customer struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user"`
	Name   string `gorm:"size:255" json:"name"`

	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"bookings,omitempty"`
}
