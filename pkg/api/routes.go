package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppointmentRequestPath is the public intake endpoint
const AppointmentRequestPath = "/api/appointment-request"

// RegisterRoutes attaches the API routes to router. metricsHandler may be nil.
func RegisterRoutes(router gin.IRouter, h *Handlers, metricsHandler http.Handler) {
	router.POST(AppointmentRequestPath, h.HandleAppointmentRequest)
	router.GET("/health", h.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
}
