package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/smsforge/campaign-service/internal/auth"
	"github.com/smsforge/campaign-service/internal/config"
	"github.com/smsforge/campaign-service/internal/db"
	"github.com/smsforge/campaign-service/internal/dispatch"
	"github.com/smsforge/campaign-service/internal/handler"
	"github.com/smsforge/campaign-service/internal/repository"
	"github.com/smsforge/campaign-service/internal/service"
)

func main() {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting campaign API server")

	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Connect to database
	database, err := db.New(cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	logger.Info("connected to database")

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	campaignRepo := repository.NewCampaignRepository(database.DB)
	contactRepo := repository.NewContactRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, logger)
	templateSvc := service.NewTemplateService()
	messageSvc := service.NewMessageService(messageRepo, logger)
	contactSvc := service.NewContactService(contactRepo, campaignRepo, logger)
	webhookSvc := service.NewWebhookService(contactRepo, cfg.Webhook.Secret, logger)

	// Initialize the dispatch pipeline
	simulator := dispatch.NewSimulator(messageSvc, dispatch.SimulatorConfig{
		MinDelay:    cfg.Dispatch.MinDelay,
		MaxDelay:    cfg.Dispatch.MaxDelay,
		FailureRate: cfg.Dispatch.FailureRate,
	}, logger)

	queue := dispatch.NewQueue(contactRepo, templateSvc, messageSvc, simulator, logger)
	queue.Start()
	defer queue.Stop()

	campaignSvc := service.NewCampaignService(campaignRepo, contactRepo, messageSvc, queue, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc, logger)
	campaignHandler := handler.NewCampaignHandler(campaignSvc, logger)
	contactHandler := handler.NewContactHandler(contactSvc, logger)
	messageHandler := handler.NewMessageHandler(campaignSvc, logger)
	webhookHandler := handler.NewWebhookHandler(webhookSvc, logger)
	healthHandler := handler.NewHealthHandler(database, logger)

	// Setup router
	r := chi.NewRouter()

	r.Use(handler.Recovery(logger))
	r.Use(handler.Logging(logger))

	r.Get("/health", healthHandler.Health)

	r.Post("/auth/signup", authHandler.Signup)
	r.Post("/auth/login", authHandler.Login)

	// Inbound webhooks authenticate with an HMAC signature, not a session
	r.Post("/webhooks/{id}/inbound", webhookHandler.HandleInbound)

	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticate(authSvc, logger))

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.ListCampaigns)
			r.Post("/", campaignHandler.CreateCampaign)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", campaignHandler.GetCampaign)
				r.Put("/", campaignHandler.UpdateCampaign)
				r.Delete("/", campaignHandler.DeleteCampaign)

				r.Get("/contacts", contactHandler.ListContacts)
				r.Post("/contacts", contactHandler.CreateContact)

				r.Post("/messages/send", messageHandler.SendMessages)
				r.Get("/messages/stats", messageHandler.GetStats)
			})
		})

		r.Route("/contacts/{id}", func(r chi.Router) {
			r.Get("/", contactHandler.GetContact)
			r.Put("/", contactHandler.UpdateContact)
			r.Delete("/", contactHandler.DeleteContact)
		})
	})

	// Create server
	addr := fmt.Sprintf(":%d", cfg.API.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API server listening", slog.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Wait for interrupt signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)

	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		logger.Info("server stopped gracefully")
	}
}
