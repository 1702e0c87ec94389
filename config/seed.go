package config

import (
	"context"
	"errors"
	"fmt"

	"hotel-booking-api/models"
	"hotel-booking-api/services"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoEmail = "demo@hotel.local"

// SeedDatabase inserts the default room types and rooms when the tables are
// empty, fills a year of availability for every room and, when a password is
// given, registers a demo customer. Re-running it only tops up missing days.
func SeedDatabase(ctx context.Context, db *gorm.DB, inventory *services.InventoryService,
	customers *services.CustomerService, year int, demoPassword string, log *zap.Logger) error {
	var rtCount int64
	if err := db.WithContext(ctx).Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return fmt.Errorf("count room types: %w", err)
	}
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room"},
			{Name: "Superior", Description: "Superior Room"},
			{Name: "Deluxe Suite", Description: "Deluxe Suite with sea view"},
		}
		if err := db.WithContext(ctx).Create(&roomTypes).Error; err != nil {
			return fmt.Errorf("seed room types: %w", err)
		}
		log.Info("room types seeded", zap.Int("count", len(roomTypes)))

		rooms := []models.Room{
			{RoomNumber: "101", Capacity: 2, Price: 100, RoomTypeID: roomTypes[0].ID,
				Facilities: datatypes.JSONSlice[string]{"tv", "wifi"}},
			{RoomNumber: "102", Capacity: 2, Price: 100, RoomTypeID: roomTypes[0].ID,
				Facilities: datatypes.JSONSlice[string]{"wifi"}},
			{RoomNumber: "201", Capacity: 3, Price: 150, RoomTypeID: roomTypes[1].ID,
				Facilities: datatypes.JSONSlice[string]{"minibar", "tv", "wifi"}},
			{RoomNumber: "301", Capacity: 4, Price: 250, RoomTypeID: roomTypes[2].ID,
				Facilities: datatypes.JSONSlice[string]{"balcony", "minibar", "tv", "wifi"}},
		}
		for i := range rooms {
			rooms[i].Version = 1
		}
		if err := db.WithContext(ctx).Create(&rooms).Error; err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
		log.Info("rooms seeded", zap.Int("count", len(rooms)))
	}

	if err := inventory.GenerateAllRooms(ctx, year); err != nil {
		return fmt.Errorf("seed availability: %w", err)
	}

	if demoPassword != "" {
		_, err := customers.Register(ctx, services.RegisterInput{
			Email:    demoEmail,
			Password: demoPassword,
			Name:     "Demo Customer",
		})
		switch {
		case err == nil:
			log.Info("demo customer seeded", zap.String("email", demoEmail))
		case errors.Is(err, services.ErrDuplicate):
		default:
			log.Warn("failed to seed demo customer", zap.Error(err))
		}
	}
	return nil
}
