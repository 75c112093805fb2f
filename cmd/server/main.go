// Package main initializes and starts the ContactKeeper HTTP server,
// setting up configuration, logging, the database, repositories, services
// and handlers.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	nethttp "net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/atinyakov/ContactKeeper/internal/auth"
	"github.com/atinyakov/ContactKeeper/internal/config"
	"github.com/atinyakov/ContactKeeper/internal/db"
	"github.com/atinyakov/ContactKeeper/internal/logger"
	"github.com/atinyakov/ContactKeeper/internal/repository"
	"github.com/atinyakov/ContactKeeper/internal/server/handler/http"
	"github.com/atinyakov/ContactKeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse flags, config file and environment.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver := db.Driver(options.DatabaseDriver)
	sqlDB, err := db.Open(driver, options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err), zap.String("driver", string(driver)))
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			zapLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	// Remove assignments left behind by deletes that bypassed the cascade.
	db.StartAssignmentSweeper(ctx, sqlDB, options.SweepInterval, zapLogger)

	store := repository.NewStore(sqlDB, driver)

	// Initialize business-logic services.
	authService := service.NewAuthService(store, auth.NewHasher(bcrypt.DefaultCost))
	tagService := service.NewTagService(store)
	contactService := service.NewContactService(store)
	assignmentService := service.NewAssignmentService(store)

	router := http.NewRouter(http.Handlers{
		Auth:        &http.AuthHandler{AuthService: authService},
		Tags:        &http.TagHandler{TagService: tagService},
		Contacts:    &http.ContactHandler{ContactService: contactService},
		Assignments: &http.AssignmentHandler{AssignmentService: assignmentService},
		Health:      &http.HealthHandler{DB: store},
	}, zapLogger, options.CORSOrigins)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("starting HTTP server",
			zap.String("addr", options.Port),
			zap.Bool("tls", options.TLSEnabled()),
			zap.String("driver", string(driver)),
		)
		if options.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server stopped", zap.Error(err))
		}
		return
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down", zap.Duration("timeout", options.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), options.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
