package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-site-backend/models"
)

// HealthResponse reports liveness and how many stored JSON values failed to decode.
type HealthResponse struct {
	Status         string `json:"status" example:"ok"`
	Uptime         string `json:"uptime" example:"1h2m3s"`
	DecodeFailures int64  `json:"decodeFailures" example:"0"`
}

// healthCheck reports server liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func healthCheck(responder Responder, startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, HealthResponse{
			Status:         "ok",
			Uptime:         time.Since(startupTime).Round(time.Second).String(),
			DecodeFailures: models.DecodeFailures(),
		})
	}
}
