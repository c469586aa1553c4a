package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"scooter/internal/domain"
	"scooter/internal/service"
)

// ScooterHandler handles HTTP requests for scooters.
type ScooterHandler struct {
	scooterService   *service.ScooterService
	passengerService *service.PassengerService
}

// NewScooterHandler creates a new ScooterHandler.
func NewScooterHandler(scooterService *service.ScooterService, passengerService *service.PassengerService) *ScooterHandler {
	return &ScooterHandler{
		scooterService:   scooterService,
		passengerService: passengerService,
	}
}

// ScooterIDRequest identifies a scooter in a body or query string.
type ScooterIDRequest struct {
	ScooterID string `json:"scooter_id" form:"scooter_id" binding:"required,anyuuid"`
}

// OccupyScooterRequest is the HTTP request body for occupying a scooter.
type OccupyScooterRequest struct {
	ScooterID   string `json:"scooter_id" form:"scooter_id" binding:"required,anyuuid"`
	PassengerID string `json:"passenger_id" form:"passenger_id" binding:"required,anyuuid"`
}

// pageParam is an integer query parameter of the scooter listing.
type pageParam struct {
	name     string
	def      int
	min, max int
}

var (
	limitParam  = pageParam{name: "limit", def: service.DefaultListLimit, min: 1, max: service.MaxListLimit}
	offsetParam = pageParam{name: "offset", def: 0, min: 0, max: math.MaxInt}
)

// parse reads the parameter, recording any problem under its name in errs.
// A missing or empty value yields the default.
func (p pageParam) parse(c *gin.Context, errs map[string][]string) int {
	raw := strings.TrimSpace(c.Query(p.name))
	if raw == "" {
		return p.def
	}

	// Atoi clamps out-of-range input, so the bounds below report it.
	n, err := strconv.Atoi(raw)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		errs[p.name] = append(errs[p.name], "A valid integer is required.")
		return p.def
	}

	switch {
	case n < p.min:
		errs[p.name] = append(errs[p.name], fmt.Sprintf("Ensure this value is greater than or equal to %d.", p.min))
	case n > p.max:
		errs[p.name] = append(errs[p.name], fmt.Sprintf("Ensure this value is less than or equal to %d.", p.max))
	}
	return n
}

// ScooterResponse is the HTTP response for scooter data.
type ScooterResponse struct {
	ID          string  `json:"id"`
	Status      string  `json:"status"`
	PassengerID *string `json:"passenger_id"`
}

func newScooterResponse(s *domain.Scooter) ScooterResponse {
	resp := ScooterResponse{
		ID:     s.ID,
		Status: string(s.Status()),
	}
	if id, ok := s.PassengerID(); ok {
		resp.PassengerID = &id
	}
	return resp
}

// Create handles GET /scooter/
func (h *ScooterHandler) Create(c *gin.Context) {
	scooter, err := h.scooterService.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newScooterResponse(scooter))
}

// List handles GET /scooter/all
func (h *ScooterHandler) List(c *gin.Context) {
	errs := make(map[string][]string)
	limit := limitParam.parse(c, errs)
	offset := offsetParam.parse(c, errs)
	if len(errs) > 0 {
		respondFieldErrors(c, errs)
		return
	}

	scooters, err := h.scooterService.List(c.Request.Context(), service.ListRequest{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ScooterResponse, 0, len(scooters))
	for _, s := range scooters {
		response = append(response, newScooterResponse(s))
	}

	c.JSON(http.StatusOK, response)
}

// Occupy handles POST /scooter/occupy/
func (h *ScooterHandler) Occupy(c *gin.Context) {
	var req OccupyScooterRequest
	if err := bindBody(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	passengerID := canonicalID(req.PassengerID)

	// Unknown passengers must not touch scooter state.
	if _, err := h.passengerService.Get(c.Request.Context(), passengerID); err != nil {
		respondError(c, err)
		return
	}

	err := h.scooterService.Occupy(c.Request.Context(), service.OccupyRequest{
		ScooterID:   canonicalID(req.ScooterID),
		PassengerID: passengerID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Vacate handles POST /scooter/vacant/
func (h *ScooterHandler) Vacate(c *gin.Context) {
	var req ScooterIDRequest
	if err := bindBody(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.scooterService.Vacate(c.Request.Context(), canonicalID(req.ScooterID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// MarkBroken handles POST /scooter/broken/
func (h *ScooterHandler) MarkBroken(c *gin.Context) {
	var req ScooterIDRequest
	if err := bindBody(c, &req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.scooterService.MarkBroken(c.Request.Context(), canonicalID(req.ScooterID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// GetBroken handles GET /scooter/broken/
// Responds 200 with the scooter if it is broken and 204 if it is not.
func (h *ScooterHandler) GetBroken(c *gin.Context) {
	var req ScooterIDRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	scooter, broken, err := h.scooterService.IsBroken(c.Request.Context(), canonicalID(req.ScooterID))
	if err != nil {
		respondError(c, err)
		return
	}

	if !broken {
		c.Status(http.StatusNoContent)
		return
	}

	respondJSON(c, http.StatusOK, newScooterResponse(scooter))
}
