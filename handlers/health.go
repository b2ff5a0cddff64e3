package handlers

import (
	"net/http"
	"time"
)

// Health godoc
// GET /api/health
// Zarfsız düz JSON döner: load balancer'lar ve uptime kontrolleri için.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"OK","timestamp":"` + time.Now().UTC().Format(time.RFC3339) +
		`","service":"grocery-planner-api"}`))
}
