package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"movie-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// APIServer serves route until SIGINT or SIGTERM, then drains in-flight
// requests for at most config.ShutdownTimeout.
func APIServer(route *chi.Mux, port string, config utils.HTTPConfig, logger *zap.Logger) error {
	server := &http.Server{
		Addr:         net.JoinHostPort("", port),
		Handler:      route,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
		ErrorLog:     zap.NewStdLog(logger.Named("http")),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch

		logger.Info("Shutting down server", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		shutdownErr <- server.Shutdown(ctx)
	}()

	logger.Info("Server running", zap.String("url", fmt.Sprintf("http://localhost%s", server.Addr)))

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("Graceful shutdown timed out", zap.Duration("timeout", config.ShutdownTimeout))
			return fmt.Errorf("graceful shutdown timed out: %w", err)
		}
		return err
	}

	logger.Info("Server stopped")
	return nil
}
