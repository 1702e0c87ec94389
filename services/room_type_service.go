package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DeletePolicy decides what happens to rooms when their room type is deleted.
type DeletePolicy string

const (
	// DeleteRestrict refuses to delete a room type that still has rooms.
	DeleteRestrict DeletePolicy = "restrict"
	// DeleteCascade removes the rooms (and their availability) with the type.
	DeleteCascade DeletePolicy = "cascade"
)

func ParseDeletePolicy(raw string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", DeleteRestrict:
		return DeleteRestrict, nil
	case DeleteCascade:
		return DeleteCascade, nil
	}
	return "", fmt.Errorf("unknown room type delete policy %q", raw)
}

type RoomTypeService struct {
	DB     *gorm.DB
	Policy DeletePolicy
	Log    *zap.Logger
}

func NewRoomTypeService(db *gorm.DB, policy DeletePolicy, log *zap.Logger) *RoomTypeService {
	if policy == "" {
		policy = DeleteRestrict
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RoomTypeService{DB: db, Policy: policy, Log: log}
}

type RoomTypeInput struct {
	Name        *string
	Description *string
}

func (s *RoomTypeService) List(ctx context.Context) ([]models.RoomType, error) {
	types := []models.RoomType{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	return types, nil
}

func (s *RoomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).Preload("Rooms").First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room type %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room type %d: %w", id, err)
	}
	return &rt, nil
}

func (s *RoomTypeService) Create(ctx context.Context, in RoomTypeInput) (*models.RoomType, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	rt := models.RoomType{Name: name}
	if in.Description != nil {
		rt.Description = strings.TrimSpace(*in.Description)
	}
	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	return &rt, nil
}

// Update overwrites only the fields present in in.
func (s *RoomTypeService) Update(ctx context.Context, id uint, in RoomTypeInput) error {
	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be blank", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}

	db := s.DB.WithContext(ctx)
	var rt models.RoomType
	if err := db.Select("id").First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("room type %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to get room type %d: %w", id, err)
	}
	if len(updates) == 0 {
		return nil
	}
	if err := db.Model(&models.RoomType{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update room type %d: %w", id, err)
	}
	return nil
}

// Delete removes a room type according to the configured policy.
func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rt models.RoomType
		if err := tx.Select("id").First(&rt, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("room type %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to get room type %d: %w", id, err)
		}

		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Pluck("id", &roomIDs).Error; err != nil {
			return fmt.Errorf("failed to list rooms of type %d: %w", id, err)
		}

		if len(roomIDs) > 0 {
			if s.Policy != DeleteCascade {
				return fmt.Errorf("room type %d still has %d rooms: %w", id, len(roomIDs), ErrInUse)
			}
			if err := deleteRooms(tx, roomIDs, false); err != nil {
				return err
			}
			s.Log.Info("cascade delete of room type",
				zap.Uint("room_type_id", id),
				zap.Uints("room_ids", roomIDs),
			)
		}

		if err := tx.Delete(&models.RoomType{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete room type %d: %w", id, err)
		}
		return nil
	})
}
