package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/config"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/auth"
	"github.com/shubham23mamgain/bringit/internal/infrastructure/database"
)

// ShutdownTimeout bounds how long in-flight requests may take to drain
const ShutdownTimeout = 10 * time.Second

// Run serves the API until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		_ = level.Info(logger).Log("msg", "starting HTTP server", "addr", srv.Addr)
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

	_ = level.Info(logger).Log("msg", "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	_ = level.Info(logger).Log("msg", "server stopped")
	return nil
}

// Migrate creates or updates the schema and seeds the default policies
func Migrate(cfg *config.Config, logger log.Logger) error {
	db, err := database.Open(database.Options{Driver: cfg.DBDriver, DSN: cfg.DSN, LogLevel: cfg.DBLogLevel})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("init casbin: %w", err)
	}
	seeded, err := cas.SeedDefaultPolicies()
	if err != nil {
		return fmt.Errorf("seed casbin policies: %w", err)
	}
	_ = level.Info(logger).Log("msg", "migration complete", "policies_seeded", seeded)
	return nil
}

// AdminInput describes the administrator to create
type AdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Mobile    string
}

// CreateAdmin registers a user with the admin role
func CreateAdmin(ctx context.Context, cfg *config.Config, logger log.Logger, in AdminInput) (*domain.User, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	user, err := c.AuthSvc.Register(ctx, domain.RegisterInput{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Mobile:    in.Mobile,
		Password:  in.Password,
		Role:      domain.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	_ = level.Info(logger).Log("msg", "admin created", "id", user.ID, "email", user.Email)
	return user, nil
}
