package controllers

import (
	"fmt"
	"net/http"

	"hotel-booking-api/middleware"
	"hotel-booking-api/models"
	"hotel-booking-api/services"

	"github.com/gin-gonic/gin"
)

type TicketController struct {
	Svc *services.TicketService
}

func NewTicketController(svc *services.TicketService) *TicketController {
	return &TicketController{Svc: svc}
}

type ticketRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *models.TicketStatus `json:"status"`
	UserID      *string              `json:"userId"`
}

func (r ticketRequest) input() services.TicketInput {
	return services.TicketInput{Title: r.Title, Description: r.Description, Status: r.Status, UserID: r.UserID}
}

// GetTickets (GET /api/Ticket?userId=)
func (ctrl *TicketController) GetTickets(c *gin.Context) {
	tickets, err := ctrl.Svc.List(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

func (ctrl *TicketController) GetTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := ctrl.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTicket files the ticket under the caller's subject unless the body
// names another owner.
func (ctrl *TicketController) CreateTicket(c *gin.Context) {
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid ticket payload: "+err.Error())
		return
	}
	owner := ""
	if claims, ok := middleware.ClaimsFrom(c); ok {
		owner = claims.Subject()
	}
	t, err := ctrl.Svc.Create(c.Request.Context(), req.input(), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, fmt.Sprintf("/api/Ticket/%d", t.ID), t)
}

func (ctrl *TicketController) UpdateTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid ticket payload: "+err.Error())
		return
	}
	if err := ctrl.Svc.Update(c.Request.Context(), id, req.input()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctrl *TicketController) DeleteTicket(c *gin.Context) {
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
