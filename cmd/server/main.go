package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"aria/internal/assistant"
	"aria/internal/config"
	"aria/internal/email"
	"aria/internal/handlers"
	"aria/internal/history"
	"aria/internal/jobs"
	"aria/internal/knowledge"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/reminder"
	"aria/internal/routine"
	"aria/internal/smarthome"
	"aria/internal/speech"
	"aria/internal/weather"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting Aria...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Settings: %s)", cfg.Port, cfg.SettingsPath)

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("❌ Failed to load settings: %v", err)
	}

	// Interaction history database
	store, err := history.New(cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("❌ Failed to open history database: %v", err)
	}
	defer store.Close()

	// Prometheus metrics
	m := metrics.Init()

	// Console speech I/O; swap for a real capture/TTS pair when hardware exists
	console := speech.NewConsoleIO()

	// Smart home device registry
	devices := smarthome.NewController()

	// Reminder scheduler speaks each reminder as it fires
	scheduler := reminder.NewScheduler(func(r reminder.Reminder) {
		console.Speak(fmt.Sprintf("Reminder: %s", r.Text))
		m.RemindersFired.Inc()
	})
	scheduler.Start()
	defer scheduler.Stop()

	// Recurring spoken routines from the settings file
	routines, err := routine.NewService(console)
	if err != nil {
		log.Fatalf("❌ Failed to create routine scheduler: %v", err)
	}
	routines.Start(settings.Routines)
	defer routines.Stop()

	// Daily history retention cleanup
	runner := jobs.NewRunner()
	runner.Register(jobs.NewRetentionCleanupJob(store, cfg.HistoryRetentionDays))
	runner.Start()
	defer runner.Stop()

	// Collaborator clients
	mailer := email.NewSMTPMailer(settings)
	weatherClient := weather.NewClient(settings)
	knowledgeClient := knowledge.NewClient(settings)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Status HTTP server: health, reminders, devices, history, metrics
	app := fiber.New(fiber.Config{
		AppName:               "Aria",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	prometheus := fiberprometheus.New("aria")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	healthHandler := handlers.NewHealthHandler(scheduler)
	reminderHandler := handlers.NewReminderHandler(scheduler)
	deviceHandler := handlers.NewDeviceHandler(devices)
	historyHandler := handlers.NewHistoryHandler(store)

	app.Get("/health", healthHandler.Handle)
	app.Get("/api/reminders", reminderHandler.List)
	app.Post("/api/reminders", reminderHandler.Create)
	app.Get("/api/devices", deviceHandler.List)
	app.Post("/api/devices", deviceHandler.Set)
	app.Get("/api/history", historyHandler.Recent)

	go func() {
		log.Printf("🌐 Status server listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("❌ Status server error: %v", err)
		}
	}()

	// The interaction loop owns the foreground until goodbye or shutdown
	session := assistant.New(assistant.Deps{
		Listener:  console,
		Speaker:   console,
		Mailer:    mailer,
		Weather:   weatherClient,
		Knowledge: knowledgeClient,
		Reminders: scheduler,
		Devices:   devices,
		History:   store,
		Metrics:   m,
		Canned:    settings.Responses,
	})

	if err := session.Run(ctx); err != nil {
		log.Printf("❌ Session ended with error: %v", err)
	}

	log.Println("🛑 Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("⚠️ Status server shutdown: %v", err)
	}
	log.Println("✅ Goodbye")
}
