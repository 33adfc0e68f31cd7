package handlers

import (
	"strconv"

	"aria/internal/history"

	"github.com/gofiber/fiber/v2"
)

const defaultHistoryLimit = 50

// HistoryHandler serves the recent interaction log
type HistoryHandler struct {
	store *history.Store
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// Recent returns the latest interactions, newest first. ?limit= caps the
// result, defaulting to 50.
func (h *HistoryHandler) Recent(c *fiber.Ctx) error {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsed
	}

	interactions, err := h.store.Recent(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load history",
		})
	}
	if interactions == nil {
		interactions = []history.Interaction{}
	}
	return c.JSON(fiber.Map{
		"interactions": interactions,
		"count":        len(interactions),
	})
}
