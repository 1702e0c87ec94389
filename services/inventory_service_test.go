package services_test

import (
	"context"
	"testing"
	"time"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/testfixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightlyRate(t *testing.T) {
	tests := []struct {
		day  time.Time
		want float64
	}{
		{testfixtures.Day(2025, time.January, 3), 100}, // Friday
		{testfixtures.Day(2025, time.January, 4), 120}, // Saturday
		{testfixtures.Day(2025, time.January, 5), 120}, // Sunday
		{testfixtures.Day(2025, time.January, 6), 100}, // Monday
	}
	for _, tt := range tests {
		t.Run(tt.day.Weekday().String(), func(t *testing.T) {
			assert.InDelta(t, tt.want, services.NightlyRate(100, tt.day), 0.0001)
		})
	}
}

func TestInventoryService_GenerateYear(t *testing.T) {
	db := testfixtures.NewDB(t)
	rt := testfixtures.CreateRoomType(t, db, "Standard")
	room := testfixtures.CreateRoom(t, db, rt.ID, "101", 100)
	svc := services.NewInventoryService(db, nil)
	ctx := context.Background()

	res, err := svc.GenerateYear(ctx, room.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 365, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, "2025-01-01", res.From)
	assert.Equal(t, "2025-12-31", res.To)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Where("room_id = ? AND reserved = ?", room.ID, false).Count(&count).Error)
	assert.Equal(t, int64(365), count)

	again, err := svc.GenerateYear(ctx, room.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 365, again.Skipped)

	leap, err := svc.GenerateYear(ctx, room.ID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 366, leap.Created)

	var first models.Booking
	require.NoError(t, db.Where("room_id = ?", room.ID).Order("check_in ASC").First(&first).Error)
	assert.Equal(t, testfixtures.Day(2024, time.January, 1), first.CheckIn.UTC())
	assert.Equal(t, testfixtures.Day(2024, time.January, 2), first.CheckOut.UTC())
}

func TestInventoryService_GenerateTopsUpGaps(t *testing.T) {
	db := testfixtures.NewDB(t)
	rt := testfixtures.CreateRoomType(t, db, "Standard")
	room := testfixtures.CreateRoom(t, db, rt.ID, "101", 100)
	svc := services.NewInventoryService(db, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, room.ID, testfixtures.Day(2025, time.March, 3), 3)
	require.NoError(t, err)

	res, err := svc.Generate(ctx, room.ID, testfixtures.Day(2025, time.March, 1), 7)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 3, res.Skipped)
}

func TestInventoryService_GenerateErrors(t *testing.T) {
	db := testfixtures.NewDB(t)
	svc := services.NewInventoryService(db, nil)
	ctx := context.Background()

	_, err := svc.Generate(ctx, 1, testfixtures.Day(2025, time.March, 1), 0)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Generate(ctx, 1, testfixtures.Day(2025, time.March, 1), 10000)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Generate(ctx, 77, testfixtures.Day(2025, time.March, 1), 5)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestInventoryService_GenerateAllRooms(t *testing.T) {
	db := testfixtures.NewDB(t)
	rt := testfixtures.CreateRoomType(t, db, "Standard")
	testfixtures.CreateRoom(t, db, rt.ID, "101", 100)
	testfixtures.CreateRoom(t, db, rt.ID, "102", 150)
	svc := services.NewInventoryService(db, nil)

	require.NoError(t, svc.GenerateAllRooms(context.Background(), 2025))

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(730), count)
}
