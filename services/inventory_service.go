package services

import (
	"context"
	"fmt"
	"time"

	"hotel-booking-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WeekendMultiplier is applied to the base price on Saturdays and Sundays.
const WeekendMultiplier = 1.2

const maxGenerationDays = 731

// NightlyRate is the ledger price of one night starting on day.
func NightlyRate(base float64, day time.Time) float64 {
	switch StartOfDay(day).Weekday() {
	case time.Saturday, time.Sunday:
		return roundPrice(base * WeekendMultiplier)
	}
	return roundPrice(base)
}

// InventoryService pre-generates availability entries, one per calendar day.
type InventoryService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewInventoryService(db *gorm.DB, log *zap.Logger) *InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryService{DB: db, Log: log}
}

type GenerationResult struct {
	RoomID  uint   `json:"roomId"`
	From    string `json:"from"`
	To      string `json:"to"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// Generate creates one unreserved entry per day for days consecutive days
// starting at from. Days that already have an entry are left alone.
func (s *InventoryService) Generate(ctx context.Context, roomID uint, from time.Time, days int) (*GenerationResult, error) {
	if days <= 0 || days > maxGenerationDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxGenerationDays)
	}
	start := StartOfDay(from)
	end := start.AddDate(0, 0, days-1)

	result := &GenerationResult{RoomID: roomID, From: start.Format(dateLayout), To: end.Format(dateLayout)}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := ensureRoom(tx, roomID)
		if err != nil {
			return err
		}

		var taken []time.Time
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND check_in BETWEEN ? AND ?", roomID, start, end).
			Pluck("check_in", &taken).Error; err != nil {
			return fmt.Errorf("failed to load existing entries: %w", err)
		}
		existing := make(map[string]struct{}, len(taken))
		for _, t := range taken {
			existing[t.UTC().Format(dateLayout)] = struct{}{}
		}

		rows := make([]models.Booking, 0, days)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if _, ok := existing[d.Format(dateLayout)]; ok {
				result.Skipped++
				continue
			}
			rows = append(rows, models.Booking{
				RoomID:   roomID,
				CheckIn:  d,
				CheckOut: d.AddDate(0, 0, 1),
				Price:    NightlyRate(room.Price, d),
			})
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert entries: %w", err)
		}
		result.Created = len(rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("inventory generated",
		zap.Uint("room_id", roomID),
		zap.String("from", result.From),
		zap.String("to", result.To),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// GenerateYear fills every day of the calendar year for a room.
func (s *InventoryService) GenerateYear(ctx context.Context, roomID uint, year int) (*GenerationResult, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(start.AddDate(1, 0, 0).Sub(start).Hours() / 24)
	return s.Generate(ctx, roomID, start, days)
}

// GenerateAllRooms runs GenerateYear for every room.
func (s *InventoryService) GenerateAllRooms(ctx context.Context, year int) error {
	var ids []uint
	if err := s.DB.WithContext(ctx).Model(&models.Room{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}
	for _, id := range ids {
		if _, err := s.GenerateYear(ctx, id, year); err != nil {
			return err
		}
	}
	return nil
}
