// Package handlers exposes the assistant's state over HTTP: health, pending
// reminders, device states, and recent interaction history.
package handlers

import (
	"time"

	"aria/internal/reminder"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	reminders *reminder.Scheduler
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(reminders *reminder.Scheduler) *HealthHandler {
	return &HealthHandler{reminders: reminders}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":            "healthy",
		"pending_reminders": len(h.reminders.Pending()),
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}
