/**
 * @description
 * Entry point for the commerce backend API server. Loads configuration,
 * opens the Postgres pool, connects the RabbitMQ producer and translation
 * client, wires the application services behind the HTTP router, starts
 * the background job scheduler, and runs the server until an interrupt
 * arrives, at which point it shuts down gracefully.
 */

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/viteezy/commerce-backend/internal/api"
	"github.com/viteezy/commerce-backend/internal/app"
	"github.com/viteezy/commerce-backend/internal/auth"
	"github.com/viteezy/commerce-backend/internal/config"
	"github.com/viteezy/commerce-backend/internal/domain"
	"github.com/viteezy/commerce-backend/internal/i18n"
	"github.com/viteezy/commerce-backend/internal/jobs"
	"github.com/viteezy/commerce-backend/internal/store"
	"github.com/viteezy/commerce-backend/pkg/rabbitmq"
	"github.com/viteezy/commerce-backend/pkg/translateclient"
)

func main() {
	log.Printf("level=info component=main msg=\"starting commerce backend server\"")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("level=fatal component=main msg=\"could not load config\" error=%v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("level=fatal component=main msg=\"invalid database url\" error=%v", err)
	}
	poolConfig.MaxConns = 100
	poolConfig.MinConns = 20
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("level=fatal component=main msg=\"could not create database pool\" error=%v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("level=fatal component=main msg=\"could not ping database\" error=%v", err)
	}
	log.Printf("level=info component=main msg=\"database connection established\"")

	var publisher rabbitmq.Publisher
	producer, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL, domain.EventsExchange)
	if err != nil {
		log.Printf("level=warn component=main msg=\"rabbitmq unavailable, events will be dropped\" error=%v", err)
		publisher = rabbitmq.NopPublisher{}
	} else {
		defer producer.Close()
		publisher = producer
	}

	var translator i18n.Translator
	if cfg.TranslateAPIURL != "" {
		translator = translateclient.NewClient(cfg.TranslateAPIURL, cfg.TranslateAPIKey)
	} else {
		log.Printf("level=warn component=main msg=\"translation API not configured, auto-translation disabled\"")
	}
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())

	repo := store.NewRepository(pool)

	userService := app.NewUserService(repo, tokens, publisher, logger)
	catalogService := app.NewCatalogService(repo, translator)
	orderService := app.NewOrderService(repo, publisher, logger)
	couponService := app.NewCouponService(repo)
	subscriptionService := app.NewSubscriptionService(repo, publisher, logger)
	membershipService := app.NewMembershipService(repo, translator)
	reviewService := app.NewReviewService(repo, publisher, logger)
	accountService := app.NewAccountService(repo)
	cmsService := app.NewCMSService(repo, translator)
	mediaService := app.NewMediaService(repo, cfg.MediaDir)
	dashboardService := app.NewDashboardService(repo)

	handler := api.NewHandler(
		userService,
		catalogService,
		orderService,
		couponService,
		subscriptionService,
		membershipService,
		reviewService,
		accountService,
		cmsService,
		mediaService,
		dashboardService,
		logger,
	)
	router := api.NewRouter(handler, tokens, repo, cfg.CORSAllowedOrigins)

	scheduler := jobs.NewScheduler(jobs.NewJobs(subscriptionService, repo, logger), logger, cfg)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", strings.TrimPrefix(cfg.ServerPort, ":")),
		Handler: router,
	}

	go func() {
		log.Printf("level=info component=main msg=\"server listening\" addr=%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("level=fatal component=main msg=\"server failed\" error=%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("level=info component=main msg=\"shutting down server\"")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("level=fatal component=main msg=\"server shutdown failed\" error=%v", err)
	}

	log.Printf("level=info component=main msg=\"server stopped\"")
}
