package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/atlas_derslik/internal/config"
	"github.com/Skotchmaster/atlas_derslik/internal/httpserver"
	"github.com/Skotchmaster/atlas_derslik/internal/middleware"
	"github.com/Skotchmaster/atlas_derslik/internal/models"
	"github.com/Skotchmaster/atlas_derslik/internal/mykafka"
	"github.com/Skotchmaster/atlas_derslik/internal/repo"
	"github.com/Skotchmaster/atlas_derslik/internal/service"
	pkgdb "github.com/Skotchmaster/atlas_derslik/pkg/db"
	"github.com/Skotchmaster/atlas_derslik/pkg/logging"
	"github.com/Skotchmaster/atlas_derslik/pkg/tokens"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "atlas-derslik-auth", "env", cfg.Env)
	slog.SetDefault(logger)
	if cfg.UsingDevKeys {
		logger.Warn("using insecure development JWT secret; set JWT_SECRET")
	}

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}
	if err := db.WithContext(initCtx).AutoMigrate(models.All()...); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	svc := service.NewAuthService(
		&repo.GormRepo{DB: db},
		tokens.NewSigner(cfg.JWTSecret, cfg.TokenTTL),
		cfg.BcryptCost,
	)
	if producer != nil {
		svc.Events = producer
	}

	if cfg.SeedDemo && !cfg.Production() {
		if err := svc.SeedDemo(initCtx); err != nil {
			cancel()
			log.Fatalf("seed demo account: %v", err)
		}
		logger.Info("demo account ready", "identifier", service.DemoIdentifier)
	}
	cancel()

	e := echo.New()
	e.HideBanner = true
	for _, m := range middleware.Common(logger, cfg.CORSOrigins) {
		e.Use(m)
	}

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: svc},
		Ready: func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			return pkgdb.Ping(ctx, db)
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("auth listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("auth stopped")
}
