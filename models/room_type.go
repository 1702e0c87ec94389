package models

import "time"

// RoomType groups physical rooms (e.g. "Deluxe Suite").
type RoomType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// One-To-Many Relation: RoomType -> Rooms
	Rooms []Room `gorm:"foreignKey:RoomTypeID" json:"rooms,omitempty"`
}
