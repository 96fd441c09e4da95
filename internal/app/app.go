package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"house-admin/internal/config"
	"house-admin/internal/database"
	"house-admin/internal/handler"
	"house-admin/internal/middleware"
	"house-admin/internal/notifier"
	"house-admin/internal/repository"
	"house-admin/internal/router"
	"house-admin/internal/scheduler"
	"house-admin/internal/service"
)

type App struct {
	server    *http.Server
	db        *database.DB
	scheduler *scheduler.Scheduler
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	accountRepo := repository.NewAccountRepository(pool)
	resetTokenRepo := repository.NewResetTokenRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	cleaningRepo := repository.NewCleaningTaskRepository(pool)
	slog.Info("database ready")

	hasher := service.NewBcryptHasher()
	mailNotifier := notifier.NewLogNotifier()

	authService, err := service.NewAuthService(cfg.JWTSigningKey, cfg.JWTTTL, accountRepo, hasher)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	resetService := service.NewPasswordResetService(accountRepo, resetTokenRepo, mailNotifier, hasher)

	authMiddleware := middleware.NewAuthMiddleware(authService, accountRepo)

	roomService := service.NewRoomService(roomRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, accountRepo)
	paymentService := service.NewPaymentService(paymentRepo, invoiceRepo)
	documentService := service.NewDocumentService(documentRepo)
	cleaningService := service.NewCleaningService(cleaningRepo)

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:     handler.NewAuthHandler(authService, resetService),
		Account:  handler.NewAccountHandler(accountRepo),
		Room:     handler.NewRoomHandler(roomService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Payment:  handler.NewPaymentHandler(paymentService),
		Document: handler.NewDocumentHandler(documentService),
		Cleaning: handler.NewCleaningHandler(cleaningService),
	})

	reminderScheduler := scheduler.New(invoiceRepo, accountRepo, mailNotifier)
	if err := reminderScheduler.Start(cfg.ReminderCron); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start reminder scheduler: %w", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server:    server,
		db:        db,
		scheduler: reminderScheduler,
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.scheduler.Stop()

	// Drain in-flight requests before the pool goes away.
	if err := a.server.Shutdown(ctx); err != nil {
		a.db.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.db.Close()

	slog.Info("server stopped")
	return nil
}
