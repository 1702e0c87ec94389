package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"hotel-booking-api/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

// CheckAvailability (GET /api/Booking/CheckAvailability?roomId&startDate&endDate)
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	roomID, ok := queryID(c, "roomId")
	if !ok {
		return
	}
	r, ok := queryRange(c)
	if !ok {
		return
	}
	avail, err := ctrl.Svc.CheckAvailability(c.Request.Context(), roomID, r.Start, r.End)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, avail)
}

// BookRoom (PUT /api/Booking/BookRoom?roomId&startDate&endDate&customerId)
// reserves whatever part of the range is still free.
func (ctrl *BookingController) BookRoom(c *gin.Context) {
	roomID, ok := queryID(c, "roomId")
	if !ok {
		return
	}
	customerID, ok := queryID(c, "customerId")
	if !ok {
		return
	}
	r, ok := queryRange(c)
	if !ok {
		return
	}
	conf, err := ctrl.Svc.BookRoom(c.Request.Context(), roomID, r.Start, r.End, customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conf)
}

type createBookingRequest struct {
	RoomID     uint     `json:"roomId" binding:"required"`
	CheckIn    string   `json:"checkIn" binding:"required"`
	CheckOut   *string  `json:"checkOut"`
	Price      *float64 `json:"price"`
	Reserved   bool     `json:"reserved"`
	CustomerID *uint    `json:"customerId"`
}

// CreateBooking (POST /api/Booking) inserts a single ledger entry.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid booking payload: "+err.Error())
		return
	}
	checkIn, err := services.ParseDate(req.CheckIn)
	if err != nil {
		badRequest(c, "invalid checkIn: "+req.CheckIn)
		return
	}
	in := services.CreateBookingInput{
		RoomID:     req.RoomID,
		CheckIn:    checkIn,
		Price:      req.Price,
		Reserved:   req.Reserved,
		CustomerID: req.CustomerID,
	}
	if req.CheckOut != nil && *req.CheckOut != "" {
		checkOut, err := services.ParseDate(*req.CheckOut)
		if err != nil {
			badRequest(c, "invalid checkOut: "+*req.CheckOut)
			return
		}
		in.CheckOut = &checkOut
	}

	b, err := ctrl.Svc.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/Booking/%d", b.ID), b)
}

// GetBookings (GET /api/Booking?roomId=)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	var roomID *uint
	if raw := c.Query("roomId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			badRequest(c, "invalid roomId")
			return
		}
		v := uint(id)
		roomID = &v
	}
	bookings, err := ctrl.Svc.List(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking (GET /api/Booking/:id)
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
