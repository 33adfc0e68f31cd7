package handlers

import (
	"errors"

	"aria/internal/reminder"

	"github.com/gofiber/fiber/v2"
)

// ReminderHandler exposes the reminder scheduler over HTTP
type ReminderHandler struct {
	scheduler *reminder.Scheduler
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(scheduler *reminder.Scheduler) *ReminderHandler {
	return &ReminderHandler{scheduler: scheduler}
}

// List returns every reminder, fired and pending
func (h *ReminderHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"reminders": h.scheduler.All(),
		"pending":   len(h.scheduler.Pending()),
	})
}

type createReminderRequest struct {
	Text string `json:"text"`
	Time string `json:"time"`
}

// Create schedules a reminder from a JSON body
func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var req createReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Text == "" || req.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Both text and time are required",
		})
	}

	r, err := h.scheduler.Schedule(req.Text, req.Time)
	if err != nil {
		var parseErr *reminder.TimeParseError
		if errors.As(err, &parseErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": parseErr.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to schedule reminder",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}
