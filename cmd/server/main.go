package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	httpapi "frontdesk-backend/internal/api/http"
	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/metrics"
	"frontdesk-backend/internal/security"
	"frontdesk-backend/internal/service"
	"frontdesk-backend/internal/storage"
)

const healthCheckInterval = 15 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Front Desk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "health_address", cfg.GetHealthAddress())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open store", "type", cfg.Store.Type, "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	rates, err := cfg.Billing.RateTable()
	if err != nil {
		log.Fatalf("Invalid rate table: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize Receipt Delivery
	var receiptSvc service.ReceiptService
	if cfg.SendGrid.APIKey != "" {
		logger.Info("Receipt e-mail via SendGrid", "from", cfg.SendGrid.FromEmail)
		receiptSvc = service.NewSendGridReceiptService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Warn("SendGrid API key not set, receipts will only be logged")
		receiptSvc = service.NewLoggingReceiptService()
	}

	// Initialize Services
	directory := service.NewGuestDirectory(backend.Guests)
	billing := service.NewBillingCalculator(rates)
	coordinator := service.NewCheckoutCoordinator(
		directory,
		billing,
		service.NewRoomInventory(backend.Rooms),
		backend.Checkouts,
		backend.Guests,
		metrics.Checkout(),
		time.Duration(cfg.Checkout.CommitTimeoutSeconds)*time.Second,
	)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(
		tokenManager,
		httpapi.NewGuestHandler(directory),
		httpapi.NewCheckoutHandler(coordinator, receiptSvc),
		httpapi.NewHistoryHandler(backend.Checkouts),
	)
	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Get().Handler(), slog.LevelError),
	}

	// Set up gRPC health server
	lis, err := net.Listen("tcp", cfg.GetHealthAddress())
	if err != nil {
		logger.Error("Failed to listen", "address", cfg.GetHealthAddress(), "error", err)
		log.Fatalf("Failed to listen: %v", err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)
	go watchBackend(ctx, backend, healthServer)

	go func() {
		logger.Info("gRPC health server listening", "address", cfg.GetHealthAddress())
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("Failed to serve gRPC", "error", err)
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress(), "store", backend.Type)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	// Graceful shutdown
	logger.Info("Shutting down front desk backend...")
	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", "error", err)
	}
	grpcServer.GracefulStop()
	logger.Info("Front desk backend stopped. Goodbye!")
}

// watchBackend mirrors store reachability into the gRPC health status
func watchBackend(ctx context.Context, backend *storage.Backend, hs *health.Server) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	for {
		status := healthpb.HealthCheckResponse_SERVING
		if err := backend.Ping(ctx); err != nil {
			logger.Warn("Store health check failed", "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
