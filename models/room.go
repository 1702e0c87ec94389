package models

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Room numbers are not unique at the schema level; the hotel keeps them unique by convention.
	RoomNumber string                      `gorm:"column:room_number;size:50;index" json:"roomNumber"`
	Capacity   int                         `gorm:"column:capacity" json:"capacity"`
	Price      float64                     `gorm:"column:price" json:"price"`
	Facilities datatypes.JSONSlice[string] `gorm:"column:facilities" json:"facilities"`

	RoomTypeID uint     `gorm:"column:room_type_id;not null;index" json:"roomTypeId"`
	RoomType   RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`

	Bookings []Booking `gorm:"foreignKey:RoomID" json:"-"`

	// Version is bumped on every update and guards against lost updates.
	Version uint `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
