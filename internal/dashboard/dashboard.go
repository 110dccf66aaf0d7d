// Package dashboard serves the browser front end: the wizard page, its
// websocket and reading statistics.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/aliverse/internal/readings"
	"github.com/ziadkadry99/aliverse/internal/report"
	"github.com/ziadkadry99/aliverse/internal/session"
)

// Dashboard provides the wizard page and its websocket.
type Dashboard struct {
	readings *readings.Service
	gate     session.Gate
	brand    report.Brand
	logger   *zap.Logger
}

// New creates a new Dashboard. A nil logger discards logs.
func New(svc *readings.Service, gate session.Gate, brand report.Brand, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		readings: svc,
		gate:     gate,
		brand:    brand,
		logger:   logger,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/api/dashboard/stats", d.handleStats)
	r.Get("/api/dashboard/recent", d.handleRecent)
	r.Get("/ws/wizard", d.handleWebSocket)
}
