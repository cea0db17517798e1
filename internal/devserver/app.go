// Package devserver is a self-contained reference backend speaking the same
// wire contract as the production guest-log API. It exists so the client
// stack can be developed and exercised end to end without the real backend.
package devserver

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

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/sekolahdigital/tamuadmin/internal/config"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/middleware"
)

// App holds the devserver dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured devserver App: logging, database,
// migrations, the seeded admin account, middleware, and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	if err := db.AutoMigrate(
		&domain.Admin{},
		&domain.Jabatan{},
		&domain.Pegawai{},
		&domain.Siswa{},
		&domain.OrangTua{},
		&domain.BukuTamu{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("auto migration completed")

	if err := seedAdmin(db, cfg.DevServer.AdminEmail, cfg.DevServer.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	gin.SetMode(cfg.DevServer.Mode)
	engine := gin.New()

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TrustUpstream: false,
		}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.DevServer.Mode, &cfg.DevServer.CORS)),
	)

	tokenExpiry, err := time.ParseDuration(cfg.DevServer.TokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("parse token expiry: %w", err)
	}

	RegisterRoutes(engine, &RouteDeps{
		DB:          db,
		JWTSecret:   cfg.DevServer.JWTSecret,
		TokenExpiry: tokenExpiry,
	})

	success = true
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		cfg:    cfg,
	}, nil
}

// resolveCORSConfig maps the config section onto the middleware defaults.
// In release mode with no allowlist, cross-origin requests are denied.
func resolveCORSConfig(mode string, cfg *config.CORSConfig) middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()

	if len(cfg.AllowOrigins) > 0 {
		out.AllowOrigins = cfg.AllowOrigins
	} else if mode == gin.ReleaseMode {
		out.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		out.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		out.AllowHeaders = cfg.AllowHeaders
	}
	out.AllowCredentials = cfg.AllowCredentials
	if cfg.MaxAge != "" {
		if d, err := time.ParseDuration(cfg.MaxAge); err == nil {
			out.MaxAge = fmt.Sprintf("%d", int(d.Seconds()))
		}
	}
	return out
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// Shutdown is graceful with a 5-second deadline, after which the database
// connection is closed.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.DevServer.Host, a.cfg.DevServer.Port)
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("devserver started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.logger.Error("database close error", slog.Any("error", err))
			} else {
				a.logger.Info("database connection closed")
			}
		}
	}

	a.logger.Info("devserver stopped")
	if err := a.logger.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}

	return runErr
}

// Engine exposes the router for tests.
func (a *App) Engine() *gin.Engine { return a.engine }
