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

func TestParseDeletePolicy(t *testing.T) {
	p, err := services.ParseDeletePolicy("")
	require.NoError(t, err)
	assert.Equal(t, services.DeleteRestrict, p)

	p, err = services.ParseDeletePolicy(" Cascade ")
	require.NoError(t, err)
	assert.Equal(t, services.DeleteCascade, p)

	_, err = services.ParseDeletePolicy("nullify")
	assert.Error(t, err)
}

func TestRoomTypeService_CRUD(t *testing.T) {
	db := testfixtures.NewDB(t)
	svc := services.NewRoomTypeService(db, "", nil)
	ctx := context.Background()

	rt, err := svc.Create(ctx, services.RoomTypeInput{Name: ptr("Deluxe Suite"), Description: ptr("Sea view")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, services.RoomTypeInput{Name: ptr("  ")})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	require.NoError(t, svc.Update(ctx, rt.ID, services.RoomTypeInput{Description: ptr("Garden view")}))
	got, err := svc.Get(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deluxe Suite", got.Name)
	assert.Equal(t, "Garden view", got.Description)

	assert.ErrorIs(t, svc.Update(ctx, 999, services.RoomTypeInput{Name: ptr("x")}), services.ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, rt.ID))
	_, err = svc.Get(ctx, rt.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, rt.ID), services.ErrNotFound)
}

func TestRoomTypeService_DeletePolicies(t *testing.T) {
	tests := []struct {
		name      string
		policy    services.DeletePolicy
		reserve   bool
		wantErr   error
		wantRooms int64
	}{
		{name: "restrict keeps type with rooms", policy: services.DeleteRestrict, wantErr: services.ErrInUse, wantRooms: 2},
		{name: "cascade removes rooms", policy: services.DeleteCascade, wantRooms: 0},
		{name: "cascade refuses reserved rooms", policy: services.DeleteCascade, reserve: true, wantErr: services.ErrInUse, wantRooms: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testfixtures.NewDB(t)
			rt := testfixtures.CreateRoomType(t, db, "Standard")
			r1 := testfixtures.CreateRoom(t, db, rt.ID, "101", 100)
			testfixtures.CreateRoom(t, db, rt.ID, "102", 100)
			_, err := services.NewInventoryService(db, nil).Generate(context.Background(), r1.ID, testfixtures.Day(2025, time.January, 1), 5)
			require.NoError(t, err)
			if tt.reserve {
				require.NoError(t, db.Model(&models.Booking{}).Where("room_id = ? AND check_in = ?", r1.ID, testfixtures.Day(2025, time.January, 2)).
					Update("reserved", true).Error)
			}

			svc := services.NewRoomTypeService(db, tt.policy, nil)
			err = svc.Delete(context.Background(), rt.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			var rooms, entries int64
			require.NoError(t, db.Model(&models.Room{}).Count(&rooms).Error)
			require.NoError(t, db.Model(&models.Booking{}).Count(&entries).Error)
			assert.Equal(t, tt.wantRooms, rooms)
			if tt.wantRooms == 0 {
				assert.Zero(t, entries)
			} else {
				assert.Equal(t, int64(5), entries)
			}
		})
	}
}
