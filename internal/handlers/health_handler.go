package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, database := "ok", "connected"
	code := http.StatusOK
	if err := h.DB.PingContext(r.Context()); err != nil {
		status, database = "degraded", "disconnected"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  database,
	})
}
