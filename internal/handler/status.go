package handler

import (
	"net/http"
	"time"

	"github.com/MashaWaleed/Marketplace-React-Frontend/internal/config"
	"github.com/MashaWaleed/Marketplace-React-Frontend/pkg/response"
)

// StatusHandler serves the JSON health endpoint.
type StatusHandler struct {
	cfg     *config.Config
	started time.Time
}

func NewStatusHandler(cfg *config.Config) *StatusHandler {
	return &StatusHandler{cfg: cfg, started: time.Now()}
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"status":       "ok",
		"name":         h.cfg.App.Name,
		"version":      h.cfg.App.Version,
		"environment":  h.cfg.App.Environment,
		"backend_mode": h.cfg.Backend.Mode,
		"uptime":       time.Since(h.started).Round(time.Second).String(),
	})
}
