package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/fakturio/faktury-api/internal/config"
	"github.com/fakturio/faktury-api/internal/flowii"
	"github.com/fakturio/faktury-api/internal/handlers"
	"github.com/fakturio/faktury-api/internal/server"
	"github.com/fakturio/faktury-api/internal/services"
	"github.com/fakturio/faktury-api/internal/store"
	"github.com/fakturio/faktury-api/internal/store/gormstore"
	"github.com/fakturio/faktury-api/internal/store/sheets"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()
	st, err := openStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("store init failed")
	}

	fakturySvc := services.NewFakturyService(st)
	analyticsSvc := services.NewAnalyticsService(fakturySvc)

	var syncH *handlers.SyncHandler
	if cfg.Flowii.Enabled() {
		client := flowii.New(ctx, flowii.Config{
			BaseURL:      cfg.Flowii.BaseURL,
			ClientID:     cfg.Flowii.ClientID,
			ClientSecret: cfg.Flowii.ClientSecret,
		})
		syncH = handlers.NewSyncHandler(services.NewSyncService(fakturySvc, client, log))
	}

	handler := server.New(cfg.APIKey, log,
		handlers.NewFakturyHandler(fakturySvc),
		handlers.NewAnalyticsHandler(analyticsSvc),
		syncH,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	log.WithFields(logrus.Fields{
		"port":        cfg.Server.Port,
		"store":       cfg.Store.Driver,
		"api_key":     cfg.APIKey != "",
		"spreadsheet": cfg.Store.SpreadsheetID != "",
		"flowii":      cfg.Flowii.Enabled(),
	}).Info("Faktúry API štartuje")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	log.Info("server stopped")
}

// openStore picks the backing store from configuration: the production
// Google spreadsheet, or a database table for local runs and tests.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "db":
		return gormstore.Open(cfg.Store.DSN)
	default:
		creds, err := googleCredentials(cfg.Store)
		if err != nil {
			return nil, err
		}
		return sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.Store.SpreadsheetID,
			SheetName:       cfg.Store.SheetName,
			SheetID:         cfg.Store.SheetID,
			CredentialsJSON: creds,
		})
	}
}

// googleCredentials loads the service account key, preferring the inline
// base64 form used by container deployments over a key file on disk.
func googleCredentials(cfg config.StoreConfig) ([]byte, error) {
	if cfg.CredentialsBase64 != "" {
		return base64.StdEncoding.DecodeString(cfg.CredentialsBase64)
	}
	if cfg.CredentialsPath != "" {
		return os.ReadFile(cfg.CredentialsPath)
	}
	return nil, nil
}
