package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickcommerce/order-payment-service/internal/application"
	"github.com/quickcommerce/order-payment-service/internal/config"
	"github.com/quickcommerce/order-payment-service/internal/kafka"
	"github.com/quickcommerce/order-payment-service/internal/logger"
	"github.com/quickcommerce/order-payment-service/internal/metrics"
	"github.com/quickcommerce/order-payment-service/internal/migrate"
	"github.com/quickcommerce/order-payment-service/internal/outbox"
	"github.com/quickcommerce/order-payment-service/internal/presentation"
	"github.com/quickcommerce/order-payment-service/internal/repository"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DB_STRING)
	if err != nil {
		logger.Warn("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Warn("db ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Warn("migrations failed", "err", err)
		os.Exit(1)
	}

	// Wiring
	m := metrics.NewEventMetrics()
	prod := kafka.NewProducer(cfg.KAFKA_BROKERS)
	defer prod.Close()

	box := outbox.NewStore(pool)
	emitter := outbox.NewEmitter(prod, box, m)

	relay := outbox.NewRelay(box, prod, cfg.OUTBOX_INTERVAL, m)
	go relay.Run(ctx)

	orderRepo := repository.NewOrderRepository(pool, box, cfg.KAFKA_ORDER_TOPIC)
	paymentRepo := repository.NewPaymentRepository(pool, box, cfg.KAFKA_PAYMENT_TOPIC)

	ordersSvc := application.NewOrdersService(orderRepo, emitter)
	paymentsSvc := application.NewPaymentsService(paymentRepo, emitter)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// API
	r.Route("/api", func(r chi.Router) {
		presentation.NewOrdersHandler(ordersSvc).Register(r)
		presentation.NewPaymentsHandler(paymentsSvc).Register(r)
	})
	r.Handle("/metrics", metrics.Handler())

	addr := ":" + cfg.HTTP_PORT
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting http", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Warn("http server crashed", "err", err)
		os.Exit(1)
	}
}
