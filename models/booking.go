package models

import "time"

// Booking is one availability entry of the ledger: a bookable night of a room
// with its own price. Reserved entries always carry the customer that holds them.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"column:room_id;not null;index:idx_bookings_room_check_in,priority:1" json:"roomId"`
	Room   Room `gorm:"foreignKey:RoomID" json:"-"`

	CheckIn  time.Time `gorm:"column:check_in;not null;index:idx_bookings_room_check_in,priority:2" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;not null" json:"checkOut"`
	Price    float64   `gorm:"column:price" json:"price"`
	Reserved bool      `gorm:"column:reserved;not null;default:false;index" json:"reserved"`

	CustomerID *uint     `gorm:"column:customer_id;index" json:"customerId,omitempty"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"-"`

	// Reference ties together the entries reserved by one commit.
	Reference string `gorm:"column:reference;size:64;index" json:"reference,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
