package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/atomslab/lead-intake-api/internal/leads"
	"github.com/atomslab/lead-intake-api/pkg/logging"
)

// Health returns a fixed liveness response with no side effects.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// DebugStoreHandler is an operator-only diagnostic that probes store
// connectivity. It is mounted behind the admin token; the store error text
// in its response is intentional operator detail, not a client leak.
type DebugStoreHandler struct {
	repo   leads.Repository
	logger *logging.Logger
}

func NewDebugStoreHandler(repo leads.Repository, logger *logging.Logger) *DebugStoreHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DebugStoreHandler{repo: repo, logger: logger}
}

// Check handles GET /api/debug-db.
func (h *DebugStoreHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "application/json")
	if err := h.repo.Ping(ctx); err != nil {
		h.logger.Error("store connectivity check failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "Connection Failed",
			"error":  err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "Connected"})
}
