package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/ContactKeeper/internal/apperr"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	DB Pinger
}

// Check responds 200 {"status":"ok"} when the database answers a ping.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.Ping(r.Context()); err != nil {
		writeError(w, r, apperr.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
