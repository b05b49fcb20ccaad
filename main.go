package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	config "github.com/fiaz291/ecommerce-korean-backend/configs"
	"github.com/fiaz291/ecommerce-korean-backend/internal/auth"
	"github.com/fiaz291/ecommerce-korean-backend/internal/db"
	"github.com/fiaz291/ecommerce-korean-backend/internal/handlers"
	"github.com/fiaz291/ecommerce-korean-backend/internal/metrics"
	"github.com/fiaz291/ecommerce-korean-backend/internal/notifier"
	"github.com/fiaz291/ecommerce-korean-backend/internal/orders"
	"github.com/fiaz291/ecommerce-korean-backend/internal/router"
	"github.com/fiaz291/ecommerce-korean-backend/internal/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("database open failed", zap.Error(err))
	}

	ctx := context.Background()

	m := metrics.NewStoreMetrics()
	orderSvc := orders.NewService(gdb, log, m, cfg.DefaultCurrency)

	// Optional integrations come up only when configured; the API runs
	// without them.
	var mailer *notifier.Mailer
	if cfg.Email.AWSAccessKeyID != "" {
		mailer, err = notifier.NewMailer(ctx, cfg.Email, log)
		if err != nil {
			log.Warn("mailer init failed, email disabled", zap.Error(err))
			mailer = nil
		}
	}

	var whatsapp *notifier.WhatsAppSender
	if cfg.WhatsApp.Token != "" {
		whatsapp = notifier.NewWhatsAppSender(cfg.WhatsApp, log)
	}

	var uploader *storage.Uploader
	if cfg.Storage.Bucket != "" {
		uploader, err = storage.NewUploader(ctx, cfg.Storage.Bucket)
		if err != nil {
			log.Warn("storage init failed, uploads disabled", zap.Error(err))
			uploader = nil
		}
	}

	var google *auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		google, err = auth.NewGoogleVerifier(ctx, cfg.Google)
		if err != nil {
			log.Warn("google oauth init failed, social signin disabled", zap.Error(err))
			google = nil
		}
	}

	h := handlers.New(gdb, log, cfg, orderSvc, mailer, whatsapp, uploader, google)
	engine := router.New(cfg, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		log.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", zap.Error(err))
	}
}
