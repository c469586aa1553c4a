package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scooter/internal/service"
)

// PassengerHandler handles HTTP requests for passengers.
type PassengerHandler struct {
	passengerService *service.PassengerService
}

// NewPassengerHandler creates a new PassengerHandler.
func NewPassengerHandler(passengerService *service.PassengerService) *PassengerHandler {
	return &PassengerHandler{passengerService: passengerService}
}

// RegisterPassengerRequest is the HTTP request body for passenger registration.
type RegisterPassengerRequest struct {
	Name    string `json:"name" form:"name" binding:"required,notblank,max=255"`
	Surname string `json:"surname" form:"surname" binding:"required,notblank,max=255"`
}

// PassengerIDResponse is the HTTP response for a registered passenger.
type PassengerIDResponse struct {
	PassengerID string `json:"passenger_id"`
}

// Register handles POST /passenger/
func (h *PassengerHandler) Register(c *gin.Context) {
	var req RegisterPassengerRequest
	if err := bindBody(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	passenger, err := h.passengerService.Register(c.Request.Context(), service.RegisterRequest{
		Name:    req.Name,
		Surname: req.Surname,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, PassengerIDResponse{PassengerID: passenger.ID})
}
