package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-bot/internal/observability"
	"github.com/spec-kit/ticket-bot/internal/store"
)

// HealthHandler responds to uptime pings and liveness/readiness probes. The
// root endpoint exists purely so external uptime monitors get a 200.
type HealthHandler struct {
	serviceName string
	version     string
	store       *store.Store
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, st *store.Store, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, store: st, metrics: metrics}
}

// Root answers uptime pings with a plain text body.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("Ticket bot is running")
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by checking the state file location.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.store.Ping(); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "state file location unavailable",
				"details": fiber.Map{"store": err.Error()},
			},
		})
	}
	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{"store": "ok"},
	})
}

// Metrics exposes the in-memory interaction and request counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	interactions, requests := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"interactions": interactions,
		"requests":     requests,
	})
}
