package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navarrastar/appointment-intake/pkg/logging"
	"github.com/navarrastar/appointment-intake/pkg/models"
	"github.com/navarrastar/appointment-intake/pkg/services"
	"github.com/navarrastar/appointment-intake/pkg/validation"
)

// maxBodyBytes caps the size of a submitted appointment request.
const maxBodyBytes int64 = 64 << 10

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	intakeService services.IntakeService
	logger        *logging.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(intakeService services.IntakeService, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handlers{
		intakeService: intakeService,
		logger:        logger,
	}
}

// SuccessResponse is returned once the appointment inbox accepted the request
type SuccessResponse struct {
	Success    bool              `json:"success"`
	Timestamp  string            `json:"timestamp"`
	SourceURL  string            `json:"sourceUrl"`
	Forwarding models.Forwarding `json:"forwarding"`
}

// ErrorResponse is returned for rejected or failed requests
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleAppointmentRequest processes a public appointment request submission
func (h *Handlers) HandleAppointmentRequest(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("error reading request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Error reading request"})
		return
	}

	result, err := h.intakeService.Submit(c.Request.Context(), body, c.Request.Referer())
	if err != nil {
		status, resp := composeError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, composeSuccess(result))
}

func composeSuccess(result *models.SubmissionResult) SuccessResponse {
	return SuccessResponse{
		Success:    true,
		Timestamp:  result.Payload.SubmittedAt,
		SourceURL:  result.Payload.ResolvedSourceURL,
		Forwarding: result.Forwarding,
	}
}

func composeError(err error) (int, ErrorResponse) {
	var validationErr *validation.Error
	var deliveryErr *services.PrimaryDeliveryError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorResponse{
			Error:   validationErr.Error(),
			Details: validationErr.Violations,
		}
	case errors.Is(err, services.ErrPrimaryNotConfigured):
		return http.StatusInternalServerError, ErrorResponse{
			Error: "Appointment inbox is not configured",
		}
	case errors.As(err, &deliveryErr):
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to deliver appointment request",
			Details: deliveryErr.Detail,
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to process appointment request",
		}
	}
}
