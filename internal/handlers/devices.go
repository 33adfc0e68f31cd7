package handlers

import (
	"aria/internal/smarthome"

	"github.com/gofiber/fiber/v2"
)

// DeviceHandler exposes smart-home device state over HTTP
type DeviceHandler struct {
	controller *smarthome.Controller
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(controller *smarthome.Controller) *DeviceHandler {
	return &DeviceHandler{controller: controller}
}

// List returns all known devices and their states
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"devices": h.controller.Devices(),
	})
}

type setDeviceRequest struct {
	Device string `json:"device"`
	On     bool   `json:"on"`
}

// Set switches a device on or off
func (h *DeviceHandler) Set(c *fiber.Ctx) error {
	var req setDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Device == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Device name is required",
		})
	}

	h.controller.Set(req.Device, req.On)
	on, _ := h.controller.State(req.Device)
	return c.JSON(fiber.Map{
		"device": req.Device,
		"on":     on,
	})
}
