package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
	"github.com/hongminglow/invoice-dashboard/internal/storage"
)

// HealthHandler returns uptime and database reachability.
type HealthHandler struct {
	startedAt time.Time
	db        storage.Pinger
}

// NewHealthHandler creates a health endpoint handler. db may be nil.
func NewHealthHandler(startedAt time.Time, db storage.Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	status, code := "ok", http.StatusOK
	database := "unchecked"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status, code, database = "degraded", http.StatusServiceUnavailable, "unreachable"
		} else {
			database = "ok"
		}
	}
	respond.Raw(w, code, map[string]string{
		"status":   status,
		"database": database,
		"uptime":   time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
