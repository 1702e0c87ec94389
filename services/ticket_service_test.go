package services_test

import (
	"context"
	"testing"

	"hotel-booking-api/models"
	"hotel-booking-api/services"
	"hotel-booking-api/testfixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketService_Lifecycle(t *testing.T) {
	db := testfixtures.NewDB(t)
	svc := services.NewTicketService(db)
	ctx := context.Background()

	ticket, err := svc.Create(ctx, services.TicketInput{Title: ptr("Broken AC"), Description: ptr("Room 101")}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.TicketOpen, ticket.Status)
	assert.Equal(t, "user-1", ticket.UserID)

	other, err := svc.Create(ctx, services.TicketInput{
		Title:  ptr("Late checkout"),
		Status: ptr(models.TicketWorkInProgress),
		UserID: ptr("user-2"),
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-2", other.UserID)

	mine, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ticket.ID, mine[0].ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Update(ctx, ticket.ID, services.TicketInput{Status: ptr(models.TicketClosedCompleted)}))
	got, err := svc.Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TicketClosedCompleted, got.Status)
	assert.Equal(t, "Broken AC", got.Title)
	assert.Equal(t, "Room 101", got.Description)

	require.NoError(t, svc.Delete(ctx, ticket.ID))
	_, err = svc.Get(ctx, ticket.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ticket.ID), services.ErrNotFound)
}

func TestTicketService_Validation(t *testing.T) {
	db := testfixtures.NewDB(t)
	svc := services.NewTicketService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, services.TicketInput{Title: ptr("")}, "u")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = svc.Create(ctx, services.TicketInput{Title: ptr("x"), Status: ptr(models.TicketStatus("Done"))}, "u")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	ticket, err := svc.Create(ctx, services.TicketInput{Title: ptr("x")}, "u")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Update(ctx, ticket.ID, services.TicketInput{Title: ptr(" ")}), services.ErrInvalidInput)
	assert.ErrorIs(t, svc.Update(ctx, 999, services.TicketInput{Title: ptr("y")}), services.ErrNotFound)
}
