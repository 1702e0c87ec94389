package controllers

import (
	"fmt"
	"net/http"

	"hotel-booking-api/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms     *services.RoomService
	Inventory *services.InventoryService
}

func NewRoomController(rooms *services.RoomService, inventory *services.InventoryService) *RoomController {
	return &RoomController{Rooms: rooms, Inventory: inventory}
}

type roomRequest struct {
	RoomNumber *string   `json:"roomNumber"`
	Capacity   *int      `json:"capacity"`
	Price      *float64  `json:"price"`
	Facilities *[]string `json:"facilities"`
	RoomTypeID *uint     `json:"roomTypeId"`
}

// GetRooms (GET /api/Rooms)
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom (GET /api/Rooms/:id)
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom (POST /api/Rooms)
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid room payload: "+err.Error())
		return
	}
	in := services.CreateRoomInput{}
	if req.RoomNumber != nil {
		in.RoomNumber = *req.RoomNumber
	}
	if req.Capacity != nil {
		in.Capacity = *req.Capacity
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	if req.Facilities != nil {
		in.Facilities = *req.Facilities
	}
	if req.RoomTypeID != nil {
		in.RoomTypeID = *req.RoomTypeID
	}

	room, err := ctrl.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/Rooms/%d", room.ID), room)
}

// UpdateRoom (PUT /api/Rooms/:id). Absent fields keep their stored value.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid room payload: "+err.Error())
		return
	}
	err := ctrl.Rooms.Update(c.Request.Context(), id, services.UpdateRoomInput{
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
		Price:      req.Price,
		Facilities: req.Facilities,
		RoomTypeID: req.RoomTypeID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoom (DELETE /api/Rooms/:id)
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type availabilityRequest struct {
	Year *int    `json:"year"`
	From *string `json:"from"`
	Days *int    `json:"days"`
}

// GenerateAvailability (POST /api/Rooms/:id/availability) fills the room's
// ledger either for a whole year or for a run of days starting at from.
func (ctrl *RoomController) GenerateAvailability(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid availability payload: "+err.Error())
		return
	}

	var (
		result *services.GenerationResult
		err    error
	)
	switch {
	case req.Year != nil:
		result, err = ctrl.Inventory.GenerateYear(c.Request.Context(), id, *req.Year)
	case req.From != nil && req.Days != nil:
		from, perr := services.ParseDate(*req.From)
		if perr != nil {
			badRequest(c, "invalid from: "+*req.From)
			return
		}
		result, err = ctrl.Inventory.Generate(c.Request.Context(), id, from, *req.Days)
	default:
		badRequest(c, "either year or from and days are required")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
