package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// Root identifies the service for anyone poking the bare origin.
func (h *DecisionHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "adaptive intervention decision engine",
		"status":  "running",
		"version": h.decisionSvc.ModelInfo().Version,
	})
}

// HealthCheck reports readiness. Artifacts load before the router exists,
// so a serving process always has its model; the shape still carries
// model_loaded for the frontend's probe logic.
func (h *DecisionHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		ModelLoaded:  true,
		ModelVersion: h.decisionSvc.ModelInfo().Version,
		Timestamp:    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
