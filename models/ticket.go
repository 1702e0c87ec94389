package models

import "time"

type TicketStatus string

const (
	TicketOpen            TicketStatus = "Open"
	TicketWorkInProgress  TicketStatus = "WorkInProgress"
	TicketClosedCompleted TicketStatus = "ClosedCompleted"
	TicketClosedSkipped   TicketStatus = "ClosedSkipped"
)

// Valid reports whether s is one of the known ticket states.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketWorkInProgress, TicketClosedCompleted, TicketClosedSkipped:
		return true
	}
	return false
}

type Ticket struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Status      TicketStatus `gorm:"size:32;not null;default:Open" json:"status"`

	// UserID is the opaque subject of the identity that owns the ticket.
	UserID string `gorm:"column:user_id;size:255;index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
