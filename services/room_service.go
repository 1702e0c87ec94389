package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hotel-booking-api/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRoomService(db *gorm.DB, log *zap.Logger) *RoomService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomService{DB: db, Log: log}
}

type CreateRoomInput struct {
	RoomNumber string
	Capacity   int
	Price      float64
	Facilities []string
	RoomTypeID uint
}

// UpdateRoomInput carries a partial update: nil fields are left untouched, so an
// explicit zero is distinguishable from "not specified".
type UpdateRoomInput struct {
	RoomNumber *string
	Capacity   *int
	Price      *float64
	Facilities *[]string
	RoomTypeID *uint
}

// normalizeFacilities turns the incoming tags into a set: trimmed, without
// blanks or duplicates, sorted for stable output.
func normalizeFacilities(in []string) datatypes.JSONSlice[string] {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, f := range in {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return datatypes.JSONSlice[string](out)
}

func ensureRoomType(tx *gorm.DB, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: roomTypeId is required", ErrInvalidInput)
	}
	var rt models.RoomType
	if err := tx.Select("id").First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room type %d does not exist", ErrInvalidInput, id)
		}
		return fmt.Errorf("db error checking room type %d: %w", id, err)
	}
	return nil
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := s.DB.WithContext(ctx).Preload("RoomType").Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if in.RoomNumber == "" {
		return nil, fmt.Errorf("%w: roomNumber is required", ErrInvalidInput)
	}
	if in.Capacity < 0 || in.Price < 0 {
		return nil, fmt.Errorf("%w: capacity and price must not be negative", ErrInvalidInput)
	}

	db := s.DB.WithContext(ctx)
	if err := ensureRoomType(db, in.RoomTypeID); err != nil {
		return nil, err
	}

	room := models.Room{
		RoomNumber: in.RoomNumber,
		Capacity:   in.Capacity,
		Price:      roundPrice(in.Price),
		Facilities: normalizeFacilities(in.Facilities),
		RoomTypeID: in.RoomTypeID,
		Version:    1,
	}
	if err := db.Create(&room).Error; err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return s.Get(ctx, room.ID)
}

// Update applies the non-nil fields of in. The write is conditional on the
// version that was read; when it matches no row the room is looked up again to
// report either ErrNotFound (deleted meanwhile) or ErrConflict.
func (s *RoomService) Update(ctx context.Context, id uint, in UpdateRoomInput) error {
	db := s.DB.WithContext(ctx)

	var current models.Room
	if err := db.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get room %d: %w", id, err)
	}

	updates := map[string]interface{}{}
	if in.RoomNumber != nil {
		num := strings.TrimSpace(*in.RoomNumber)
		if num == "" {
			return fmt.Errorf("%w: roomNumber must not be blank", ErrInvalidInput)
		}
		updates["room_number"] = num
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
		}
		updates["capacity"] = *in.Capacity
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
		}
		updates["price"] = roundPrice(*in.Price)
	}
	if in.Facilities != nil {
		updates["facilities"] = normalizeFacilities(*in.Facilities)
	}
	if in.RoomTypeID != nil {
		if err := ensureRoomType(db, *in.RoomTypeID); err != nil {
			return err
		}
		updates["room_type_id"] = *in.RoomTypeID
	}
	if len(updates) == 0 {
		return nil
	}
	updates["version"] = current.Version + 1

	res := db.Model(&models.Room{}).
		Where("id = ? AND version = ?", id, current.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update room %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to re-check room %d: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("room %d was modified concurrently: %w", id, ErrConflict)
	}
	return nil
}

// Delete removes the room together with its availability entries.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteRooms(tx, []uint{id}, true)
	})
}

// deleteRooms removes rooms and their free ledger rows. Rooms holding reserved
// entries are refused with ErrInUse so no guest booking disappears. With strict
// set, a room id that does not exist yields ErrNotFound.
func deleteRooms(tx *gorm.DB, ids []uint, strict bool) error {
	if len(ids) == 0 {
		return nil
	}
	var reserved int64
	if err := tx.Model(&models.Booking{}).Where("room_id IN ? AND reserved = ?", ids, true).Count(&reserved).Error; err != nil {
		return fmt.Errorf("db error checking reservations: %w", err)
	}
	if reserved > 0 {
		return fmt.Errorf("rooms %v hold %d reserved entries: %w", ids, reserved, ErrInUse)
	}
	if err := tx.Where("room_id IN ?", ids).Delete(&models.Booking{}).Error; err != nil {
		return fmt.Errorf("failed to delete availability entries: %w", err)
	}
	res := tx.Where("id IN ?", ids).Delete(&models.Room{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete rooms: %w", res.Error)
	}
	if strict && res.RowsAffected != int64(len(ids)) {
		return fmt.Errorf("rooms %v: %w", ids, ErrNotFound)
	}
	return nil
}
