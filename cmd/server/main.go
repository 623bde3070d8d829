package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nichebazar/marketplace/internal/config"
	"github.com/nichebazar/marketplace/internal/es"
	"github.com/nichebazar/marketplace/internal/handlers"
	"github.com/nichebazar/marketplace/internal/logging"
	"github.com/nichebazar/marketplace/internal/mail"
	"github.com/nichebazar/marketplace/internal/middleware/loggingmw"
	"github.com/nichebazar/marketplace/internal/mykafka"
	"github.com/nichebazar/marketplace/internal/service/token"
	"github.com/nichebazar/marketplace/internal/storage"
	httpserver "github.com/nichebazar/marketplace/internal/transport/http"
)

const businessIndex = "businesses"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	config.MustNonEmpty(configuration.JWT_SECRET, "JWT_SECRET")
	config.MustNonEmpty(configuration.REFRESH_SECRET, "REFRESH_SECRET")

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod, err = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS empty, event publishing disabled")
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		esClient = nil
	}

	objectStore, err := storage.NewDiskStore(
		configuration.STORAGE_ROOT,
		configuration.STORAGE_BUCKET,
		configuration.PUBLIC_BASE_URL,
	)
	if err != nil {
		log.Fatalf("storage init failed: %v", err)
	}

	smtpPort := configuration.SMTP_PORT
	mailer := mail.NewMailer(mail.Config{
		Host:     configuration.SMTP_HOST,
		Port:     smtpPort,
		Secure:   configuration.SMTP_SECURE == "true",
		Username: configuration.SMTP_USER,
		Password: configuration.SMTP_PASS,
		From:     configuration.SMTP_FROM,
	})

	tokenService := &token.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))
	e.Static("/storage", configuration.STORAGE_ROOT)

	deps := httpserver.Deps{
		DB:              db,
		AuthHandler:     &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		ProfileHandler:  &handlers.ProfileHandler{DB: db},
		BusinessHandler: &handlers.BusinessHandler{DB: db, Producer: prod, ES: esClient, Index: businessIndex},
		ProductHandler:  &handlers.ProductHandler{DB: db, Producer: prod},
		UploadHandler:   &handlers.UploadHandler{Store: objectStore},
		ContactHandler:  &handlers.ContactHandler{Mailer: mailer, Recipient: configuration.CONTACT_RECIPIENT_EMAIL},
		SearchHandler:   &handlers.SearchHandler{ES: esClient, Index: businessIndex},
		TokenService:    tokenService,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	} else {
		logger.Error("db() error", "error", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
