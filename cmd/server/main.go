package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"ristorante/internal/api"
	"ristorante/internal/auth"
	"ristorante/internal/config"
	"ristorante/internal/db"
	"ristorante/internal/repository"
	"ristorante/internal/service"
	"ristorante/internal/slot"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	grid, err := slot.NewGrid(cfg.ServiceOpen, cfg.ServiceClose, cfg.SlotIntervalMinutes)
	if err != nil {
		log.Fatalf("Invalid service window: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)
	jobRepo := repository.NewJobRepository(database)

	reservationSvc := service.NewReservationService(reservationRepo, grid, cfg.SlotCapacity, cfg.TimeZone)
	availabilitySvc := service.NewAvailabilityService(reservationRepo, grid, cfg.SlotCapacity, cfg.TimeZone)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo, cfg.JWTSecret)
	jobSvc := service.NewJobService(jobRepo, cfg.TimeZone)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := adminAuthSvc.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to ensure bootstrap admin: %v", err)
		}
	}

	userHandler := api.NewUserReservationHandler(reservationSvc, availabilitySvc)
	adminHandler := api.NewAdminHandler(reservationSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/available-dates", userHandler.AvailableDates).Methods("GET")
	r.HandleFunc("/api/reservations", userHandler.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", userHandler.GetReservation).Methods("GET")

	// Admin endpoints (capability-checked)
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware(cfg.JWTSecret))
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}/status", adminHandler.UpdateReservationStatus).Methods("PATCH")
	admin.HandleFunc("/reservations/{id}", adminHandler.DeleteReservation).Methods("DELETE")

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := jobSvc.SweepPastReservations(); err != nil {
			log.Printf("Sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	handler := handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
