package controllers

import (
	"fmt"
	"net/http"

	"hotel-booking-api/services"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	Svc *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Svc: svc}
}

type roomTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rt, err := ctrl.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid room type payload: "+err.Error())
		return
	}
	rt, err := ctrl.Svc.Create(c.Request.Context(), services.RoomTypeInput{Name: req.Name, Description: req.Description})
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/RoomType/%d", rt.ID), rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req roomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid room type payload: "+err.Error())
		return
	}
	if err := ctrl.Svc.Update(c.Request.Context(), id, services.RoomTypeInput{Name: req.Name, Description: req.Description}); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteRoomType answers 409 when the type still has rooms under the
// restrict policy.
func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
