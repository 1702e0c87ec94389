package controllers

import (
	"net/http"

	"hotel-booking-api/services"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	Customers *services.CustomerService
	Bookings  *services.BookingService
}

func NewCustomerController(customers *services.CustomerService, bookings *services.BookingService) *CustomerController {
	return &CustomerController{Customers: customers, Bookings: bookings}
}

// GetCustomer (GET /api/Customers/:id)
func (ctrl *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	customer, err := ctrl.Customers.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetCustomerBookings (GET /api/Customers/:id/Bookings) lists the entries
// reserved by one customer.
func (ctrl *CustomerController) GetCustomerBookings(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookings, err := ctrl.Bookings.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
