package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"scooter/internal/domain"
	"scooter/internal/service"
)

// LogHandler handles passenger export requests.
type LogHandler struct {
	tracker          *service.OperationTracker
	logService       *service.LogService
	passengerService *service.PassengerService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(tracker *service.OperationTracker, logService *service.LogService, passengerService *service.PassengerService) *LogHandler {
	return &LogHandler{
		tracker:          tracker,
		logService:       logService,
		passengerService: passengerService,
	}
}

// OperationStatusRequest is the query for polling an operation.
type OperationStatusRequest struct {
	ID string `form:"id" binding:"required,anyuuid"`
}

// OperationResult carries the export location.
type OperationResult struct {
	Path *string `json:"path"`
}

// OperationResponse is the HTTP response for an operation.
type OperationResponse struct {
	ID     string           `json:"id"`
	Done   bool             `json:"done"`
	Result *OperationResult `json:"result"`
	Error  string           `json:"error,omitempty"`
}

// StartExport handles GET /log/
// The export runs in the background; the response is always still pending.
func (h *LogHandler) StartExport(c *gin.Context) {
	op, err := h.tracker.Execute(c.Request.Context(), service.PassengersLogOperation, h.exportPassengers)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, OperationResponse{
		ID:   op.ID,
		Done: op.Done(),
	})
}

// Status handles GET /log/status
func (h *LogHandler) Status(c *gin.Context) {
	var req OperationStatusRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	op, err := h.tracker.Get(c.Request.Context(), canonicalID(req.ID))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOperationStatusResponse(op))
}

func (h *LogHandler) exportPassengers(ctx context.Context) (string, error) {
	passengers, err := h.passengerService.List(ctx)
	if err != nil {
		return "", err
	}
	return h.logService.Export(ctx, passengers)
}

func newOperationStatusResponse(op *domain.Operation) OperationResponse {
	resp := OperationResponse{
		ID:   op.ID,
		Done: op.Done(),
	}
	switch op.State {
	case domain.OperationStateFailed:
		resp.Error = op.Error
	case domain.OperationStateDone:
		path := op.Result
		resp.Result = &OperationResult{Path: &path}
	default:
		resp.Result = &OperationResult{}
	}
	return resp
}
