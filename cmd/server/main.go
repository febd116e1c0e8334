package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartHTTP "github.com/verdantgoods/storefront/internal/cart/delivery/http"
	cartRepo "github.com/verdantgoods/storefront/internal/cart/repository"
	catalogHTTP "github.com/verdantgoods/storefront/internal/catalog/delivery/http"
	catalogRepo "github.com/verdantgoods/storefront/internal/catalog/repository"
	contentHTTP "github.com/verdantgoods/storefront/internal/content/delivery/http"
	contentRepo "github.com/verdantgoods/storefront/internal/content/repository"
	contentCommand "github.com/verdantgoods/storefront/internal/content/usecase/command"
	contentQuery "github.com/verdantgoods/storefront/internal/content/usecase/query"
	"github.com/verdantgoods/storefront/internal/middleware"
	"github.com/verdantgoods/storefront/internal/order"
	orderRepo "github.com/verdantgoods/storefront/internal/order/repository"
	userHTTP "github.com/verdantgoods/storefront/internal/user/delivery/http"
	userRepo "github.com/verdantgoods/storefront/internal/user/repository"
	"github.com/verdantgoods/storefront/kafka"
	"github.com/verdantgoods/storefront/pkg/database"
	"github.com/verdantgoods/storefront/pkg/logger"
	"github.com/verdantgoods/storefront/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting storefront")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName, getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"))
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "storefront"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Initialize repositories and run migrations
	users := userRepo.NewGormUserRepository(db)
	products := catalogRepo.NewGormProductRepository(db)
	portfolio := catalogRepo.NewGormPortfolioRepository(db)
	carts := cartRepo.NewGormCartRepository(db)
	reviews := contentRepo.NewGormReviewRepository(db)
	faqs := contentRepo.NewGormFAQRepository(db)
	sales := orderRepo.NewGormSaleRepository(db)

	for _, m := range []interface{ AutoMigrate() error }{users, products, portfolio, carts, reviews, faqs, sales} {
		if err := m.AutoMigrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Dev seed data
	if getEnv("SEED", "false") == "true" {
		if err := seed(users, products, portfolio, faqs); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to seed database")
		}
	}

	// Redis is optional; without it the response cache and rate limiter
	// pass requests straight through.
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Redis unreachable, caching and rate limiting disabled")
			redisClient = nil
		}
	}

	// Kafka is optional; without it order events are skipped.
	var events *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		events, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, order events disabled")
		} else {
			defer events.Close()
		}
	}

	// Initialize HTTP handlers
	userHandler := userHTTP.NewUserHandler(users)
	catalogHandler := catalogHTTP.NewCatalogHandler(products, portfolio)
	cartHandler := cartHTTP.NewCartHandler(carts, products)
	contentHandler := contentHTTP.NewContentHandler(
		contentCommand.NewSubmitReviewHandler(reviews),
		contentCommand.NewModerateReviewHandler(reviews),
		contentCommand.NewDeleteReviewHandler(reviews),
		contentCommand.NewCreateFAQHandler(faqs),
		contentCommand.NewUpdateFAQHandler(faqs),
		contentCommand.NewDeleteFAQHandler(faqs),
		contentQuery.NewListReviewsHandler(reviews),
		contentQuery.NewListFAQsHandler(faqs),
	)
	orderHandler, err := order.InitializeHandler(db, events)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize order handler")
	}

	authLimit, _ := strconv.Atoi(getEnv("AUTH_RATE_LIMIT", "10"))
	limiter := middleware.NewRateLimiter(redisClient, authLimit, time.Minute)

	// Setup router
	router := mux.NewRouter()
	userHandler.RegisterRoutes(router, limiter)
	catalogHandler.RegisterRoutes(router, redisClient)
	cartHandler.RegisterRoutes(router)
	contentHandler.RegisterRoutes(router, redisClient)
	orderHandler.RegisterRoutes(router)

	registerHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      otelhttp.NewHandler(c.Handler(router), "storefront-http"),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func registerHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	}).Methods("GET")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
