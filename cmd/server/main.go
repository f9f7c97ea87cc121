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

	"github.com/craftedge/storefront/internal/config"
	"github.com/craftedge/storefront/internal/es"
	"github.com/craftedge/storefront/internal/handlers"
	"github.com/craftedge/storefront/internal/logging"
	"github.com/craftedge/storefront/internal/mykafka"
	"github.com/craftedge/storefront/internal/sessiongate"
	"github.com/craftedge/storefront/internal/token"
	httpserver "github.com/craftedge/storefront/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	tokens := &token.Service{Secret: []byte(configuration.JWT_SECRET)}

	brokers := []string{configuration.KAFKA_ADDRESS}
	prod, err := mykafka.NewProducer(brokers)
	if err != nil {
		log.Fatal(err)
	}
	if prod == nil {
		log.Println("KAFKA_ADDRESS is not set, event publishing disabled")
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(sessiongate.Middleware(sessiongate.DefaultConfig(tokens)))

	deps := httpserver.Deps{
		DB:             db,
		AuthHandler:    &handlers.AuthHandler{DB: db, Tokens: tokens, Producer: prod, Secure: configuration.Production()},
		ProfileHandler: &handlers.ProfileHandler{DB: db, Tokens: tokens},
		SummaryHandler: &handlers.SummaryHandler{DB: db, Tokens: tokens},
		ProductHandler: &handlers.ProductHandler{DB: db},
		CommentHandler: &handlers.CommentHandler{DB: db},
		OrderHandler:   &handlers.OrderHandler{DB: db, Producer: prod},
		SearchHandler:  handlers.NewSearchHandler(esClient, "product"),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
