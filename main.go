package main

import (
	"bitwise74/auth-api/app"
	"bitwise74/auth-api/config"
	"bitwise74/auth-api/internal"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const shutdownTimeout = time.Second * 10

func main() {
	gin.SetMode(gin.ReleaseMode)

	if err := run(); err != nil {
		zap.L().Error("Server stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Config warnings are logged before the configured level is known
	if err := app.SetupLogger("info"); err != nil {
		return fmt.Errorf("failed to set up logger, %w", err)
	}

	if err := config.Setup(); err != nil {
		return fmt.Errorf("invalid configuration, %w", err)
	}

	if err := app.SetupLogger(viper.GetString("app.log_level")); err != nil {
		return fmt.Errorf("failed to set up logger, %w", err)
	}
	defer zap.L().Sync()

	d, err := internal.NewDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	router, err := app.NewRouter(d)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", viper.GetInt("host.port")),
		Handler:      router,
		ReadTimeout:  viper.GetDuration("host.read_timeout"),
		WriteTimeout: viper.GetDuration("host.write_timeout"),
		IdleTimeout:  time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
