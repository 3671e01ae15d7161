package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkinglot/internal/api"
	"parkinglot/internal/config"
	"parkinglot/internal/migrations"
	"parkinglot/internal/notify"
	"parkinglot/internal/repository"
	"parkinglot/internal/service"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := migrations.Up(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var mailer notify.EmailSender = notify.LogSender{}
	if cfg.SendGrid.Enabled() {
		mailer = notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}
	var sms notify.SMSSender = notify.LogSender{}
	if cfg.Twilio.Enabled() {
		sms = notify.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
	}

	spotSvc := service.NewSpotService(repository.NewSpotRepository(db), sms, cfg.OpsPhone)
	authSvc := service.NewAdminAuthService(repository.NewAdminAuthRepository(db), cfg.JWTSecret)
	jobSvc := service.NewJobService(repository.NewJobRepository(db), mailer)

	router := api.NewRouter(api.NewAdminHandler(spotSvc), api.NewAdminAuthHandler(authSvc), []byte(cfg.JWTSecret))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	c := cron.New()
	if _, err := c.AddFunc(cfg.JobSchedule, jobSvc.Run); err != nil {
		log.Fatalf("Invalid JOB_SCHEDULE %q: %v", cfg.JobSchedule, err)
	}
	c.Start()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, cors(router)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	<-c.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
}
