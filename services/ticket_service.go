package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking-api/models"

	"gorm.io/gorm"
)

type TicketService struct {
	DB *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{DB: db}
}

type TicketInput struct {
	Title       *string
	Description *string
	Status      *models.TicketStatus
	UserID      *string
}

func (s *TicketService) List(ctx context.Context, userID string) ([]models.Ticket, error) {
	q := s.DB.WithContext(ctx).Order("id ASC")
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	tickets := []models.Ticket{}
	if err := q.Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketService) Get(ctx context.Context, id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := s.DB.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ticket %d: %w", id, err)
	}
	return &t, nil
}

// Create stores a new ticket. Status defaults to Open; owner defaults to
// fallbackOwner (the authenticated subject) when the input names none.
func (s *TicketService) Create(ctx context.Context, in TicketInput, fallbackOwner string) (*models.Ticket, error) {
	t := models.Ticket{Status: models.TicketOpen, UserID: fallbackOwner}
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
	}
	if t.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown ticket status %q", ErrInvalidInput, *in.Status)
		}
		t.Status = *in.Status
	}
	if in.UserID != nil && strings.TrimSpace(*in.UserID) != "" {
		t.UserID = strings.TrimSpace(*in.UserID)
	}
	if err := s.DB.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	return &t, nil
}

func (s *TicketService) Update(ctx context.Context, id uint, in TicketInput) error {
	updates := map[string]interface{}{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return fmt.Errorf("%w: title must not be blank", ErrInvalidInput)
		}
		updates["title"] = title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return fmt.Errorf("%w: unknown ticket status %q", ErrInvalidInput, *in.Status)
		}
		updates["status"] = *in.Status
	}
	if in.UserID != nil {
		updates["user_id"] = strings.TrimSpace(*in.UserID)
	}

	db := s.DB.WithContext(ctx)
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}
	if err := db.Model(&models.Ticket{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update ticket %d: %w", id, err)
	}
	return nil
}

func (s *TicketService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Ticket{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete ticket %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	return nil
}
