package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/danielhkuo/querydesk/apierr"
	"github.com/danielhkuo/querydesk/cliparse"
	"github.com/danielhkuo/querydesk/db"
	"github.com/danielhkuo/querydesk/logging"
	"github.com/danielhkuo/querydesk/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environment variables win
	if err := cliparse.LoadEnvFiles(".env"); err != nil {
		logrus.WithError(err).Fatal("failed to load .env")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("error parsing flags")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("error configuring logger")
	}

	ctx := context.Background()

	// Connect and verify
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.Migrate(ctx, dbConn, cfg.DatabaseType, logger); err != nil {
		logger.WithError(err).Fatal("schema migration failed")
	}
	logger.WithField("database", cfg.DatabaseType).Info("database schema ready")

	if cfg.Seed {
		n, err := db.Seed(ctx, dbConn, db.SampleFormData)
		if err != nil {
			logger.WithError(err).Fatal("seeding failed")
		}
		logger.WithField("rows", n).Info("form data seeded")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, logger, apierr.NewJSONErrorHandler(logger))

	// Create server
	server := &http.Server{
		Handler:           mux,
		Addr:              cfg.Addr(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Stop on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.WithError(err).Error("listen failed")
		return
	}

	// Start server
	logger.WithField("port", cfg.Port).Info("listening")
	if err := serve(ctx, server, ln, logger); err != nil {
		logger.WithError(err).Error("server closed")
		return
	}
	logger.Info("server closed")
}

// serve runs server on ln until ctx is done, then waits for in-flight
// requests to finish or shutdownTimeout to pass
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger logrus.FieldLogger) error {
	idle := make(chan struct{})
	var shutdownErr error
	go func() {
		defer close(idle)
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("graceful shutdown failed")
			server.Close()
			shutdownErr = err
		}
	}()

	if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-idle
	return shutdownErr
}
