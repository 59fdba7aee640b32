package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/yourjourney/guest-portal/internal/http/handlers"
	mw "github.com/yourjourney/guest-portal/internal/http/middleware"
	"github.com/yourjourney/guest-portal/internal/platform/mailer"
	"github.com/yourjourney/guest-portal/internal/repo/postgres"
	"github.com/yourjourney/guest-portal/internal/worker"
	"github.com/yourjourney/guest-portal/pkg/config"
	"github.com/yourjourney/guest-portal/pkg/database"
	"github.com/yourjourney/guest-portal/pkg/events"
	"github.com/yourjourney/guest-portal/pkg/logger"
	pkgmw "github.com/yourjourney/guest-portal/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		logger.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	propertyRepo := postgres.NewPropertyRepo(pool)
	bookingRepo := postgres.NewGuestBookingRepo(pool)
	adminRepo := postgres.NewAdminRepo(pool)

	// Guest link emails
	mailSvc := newMailer(cfg)
	notify := worker.NewNotifyWorker(eventBus, mailSvc)
	if err := notify.Start(); err != nil {
		logger.Error("Failed to start notify worker", "error", err)
		os.Exit(1)
	}

	// Handlers
	propertiesHandler := handlers.NewPropertiesHandler(propertyRepo)
	accessHandler := handlers.NewBookingAccessHandler(bookingRepo, eventBus)
	adminAuthHandler := handlers.NewAdminAuthHandler(adminRepo, cfg.Auth.AdminTokenTTL)
	adminPropertiesHandler := handlers.NewAdminPropertiesHandler(propertyRepo, eventBus)
	adminBookingsHandler := handlers.NewAdminBookingsHandler(bookingRepo, propertyRepo, eventBus, cfg.Portal.BaseURL)
	seedHandler := handlers.NewSeedHandler(adminRepo, propertyRepo)

	tokenLimiter := mw.NewRateLimiter(pool, mw.RateLimitConfig{
		Requests: 30,
		Window:   time.Minute,
		KeyFunc:  mw.TokenLookupKeyFunc,
	})
	loginLimiter := mw.NewRateLimiter(pool, mw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		KeyFunc:  mw.AdminLoginKeyFunc,
	})

	r := chi.NewRouter()
	r.Use(pkgmw.RequestID)
	r.Use(pkgmw.ServiceName("api"))
	r.Use(pkgmw.Logging)
	r.Use(pkgmw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"message":"Your Journey API - Guest Portal"}`))
		})

		r.Mount("/properties", propertiesHandler.Routes())

		r.Group(func(r chi.Router) {
			r.Use(tokenLimiter.Middleware())
			r.Mount("/booking", accessHandler.Routes())
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter.Middleware()).Post("/login", adminAuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireAdmin)
				r.Get("/me", adminAuthHandler.Me)
				r.Mount("/properties", adminPropertiesHandler.Routes())
				r.Mount("/guest-bookings", adminBookingsHandler.Routes())
			})
		})

		r.Mount("/seed", seedHandler.Routes())
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting API", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("API error", "error", err)
		os.Exit(1)
	}
}

func newMailer(cfg *config.Config) mailer.Service {
	switch {
	case cfg.Email.DevMode:
		return mailer.NewDevMailer()
	case cfg.Email.MailerSendKey != "":
		return mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.SMTPFrom)
	default:
		return mailer.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPFrom,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass, cfg.Email.SMTPUseTLS)
	}
}
