package http

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"dispocli/internal/infrastructure"
)

// HealthHandler serves liveness information.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startedAt: time.Now()}
}

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Handle responds with the service status.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "ok",
		Version: infrastructure.ServiceVersion,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
