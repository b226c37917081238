package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hongminglow/invoice-dashboard/internal/http/respond"
	"github.com/hongminglow/invoice-dashboard/internal/seed"
)

// Seeder creates the schema and loads the reference data.
type Seeder interface {
	Run(ctx context.Context) (seed.Summary, error)
}

// SeedHandler exposes the seed loader over HTTP.
type SeedHandler struct {
	seeder Seeder
}

// NewSeedHandler constructs the handler.
func NewSeedHandler(seeder Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Register attaches the seed route to the mux.
func (h *SeedHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/seed", h.handle)
}

func (h *SeedHandler) handle(w http.ResponseWriter, r *http.Request) {
	if _, err := h.seeder.Run(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "seed failed", "err", err)
		respond.Raw(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond.Raw(w, http.StatusOK, "ok")
}
