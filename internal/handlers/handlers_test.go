package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aria/internal/reminder"
	"aria/internal/smarthome"

	"github.com/gofiber/fiber/v2"
)

func newTestApp() (*fiber.App, *reminder.Scheduler, *smarthome.Controller) {
	scheduler := reminder.NewScheduler(func(reminder.Reminder) {})
	devices := smarthome.NewController()

	app := fiber.New()
	app.Get("/health", NewHealthHandler(scheduler).Handle)
	app.Get("/api/reminders", NewReminderHandler(scheduler).List)
	app.Post("/api/reminders", NewReminderHandler(scheduler).Create)
	app.Get("/api/devices", NewDeviceHandler(devices).List)
	app.Post("/api/devices", NewDeviceHandler(devices).Set)
	return app, scheduler, devices
}

func TestHealthReportsPendingReminders(t *testing.T) {
	app, scheduler, _ := newTestApp()
	if _, err := scheduler.Schedule("stretch", "in 30 minutes"); err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Status           string `json:"status"`
		PendingReminders int    `json:"pending_reminders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", body.Status)
	}
	if body.PendingReminders != 1 {
		t.Errorf("Expected 1 pending reminder, got %d", body.PendingReminders)
	}
}

func TestCreateReminderRejectsBadTime(t *testing.T) {
	app, scheduler, _ := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/reminders",
		strings.NewReader(`{"text":"stretch","time":"whenever"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for unparseable time, got %d", resp.StatusCode)
	}
	if pending := scheduler.Pending(); len(pending) != 0 {
		t.Errorf("Expected no reminder scheduled, got %d", len(pending))
	}
}

func TestCreateReminderRequiresFields(t *testing.T) {
	app, _, _ := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/reminders",
		strings.NewReader(`{"text":"stretch"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing time, got %d", resp.StatusCode)
	}
}

func TestCreateReminderSucceeds(t *testing.T) {
	app, scheduler, _ := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/reminders",
		strings.NewReader(`{"text":"call mom","time":"in 10 minutes"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected 201, got %d", resp.StatusCode)
	}
	if pending := scheduler.Pending(); len(pending) != 1 {
		t.Errorf("Expected one pending reminder, got %d", len(pending))
	}
}

func TestSetAndListDevices(t *testing.T) {
	app, _, devices := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/devices",
		strings.NewReader(`{"device":"kitchen lights","on":true}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	on, known := devices.State("kitchen lights")
	if !known || !on {
		t.Errorf("Expected kitchen lights on, got on=%v known=%v", on, known)
	}

	listResp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/devices", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var body struct {
		Devices map[string]bool `json:"devices"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if !body.Devices["kitchen lights"] {
		t.Errorf("Expected kitchen lights in listing, got %v", body.Devices)
	}
}
