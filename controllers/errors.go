package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-booking-api/services"
	"hotel-booking-api/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error envelope. The error
// is also attached to the context so the request logger records it.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, services.ErrDuplicate):
		utils.JSONError(c, http.StatusBadRequest, "DUPLICATE", err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		utils.JSONError(c, http.StatusBadRequest, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrUnavailable):
		utils.JSONError(c, http.StatusNotFound, "UNAVAILABLE", err.Error())
	case errors.Is(err, services.ErrInUse):
		utils.JSONError(c, http.StatusConflict, "IN_USE", err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusInternalServerError, "CONFLICT", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "INVALID_INPUT", message)
}

// pathID reads a positive integer path parameter. On failure it has already
// written a 400 response.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryRange parses startDate and endDate into a validated date range.
func queryRange(c *gin.Context) (services.DateRange, bool) {
	start, err := services.ParseDate(c.Query("startDate"))
	if err != nil {
		badRequest(c, "invalid startDate: "+c.Query("startDate"))
		return services.DateRange{}, false
	}
	end, err := services.ParseDate(c.Query("endDate"))
	if err != nil {
		badRequest(c, "invalid endDate: "+c.Query("endDate"))
		return services.DateRange{}, false
	}
	r, err := services.NewDateRange(start, end)
	if err != nil {
		respondError(c, err)
		return services.DateRange{}, false
	}
	return r, true
}

func created(c *gin.Context, location string, body interface{}) {
	c.Header("Location", location)
	utils.JSONSuccess(c, http.StatusCreated, body)
}
