package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/config"
	ordersapi "github.com/BearBump/OrderTrack/internal/api/orders_api"
	"github.com/BearBump/OrderTrack/internal/broker/kafka"
	"github.com/BearBump/OrderTrack/internal/cache/rediscache"
	"github.com/BearBump/OrderTrack/internal/logger"
	"github.com/BearBump/OrderTrack/internal/models"
	"github.com/BearBump/OrderTrack/internal/services/notifications"
	"github.com/BearBump/OrderTrack/internal/services/orderhistory"
	"github.com/BearBump/OrderTrack/internal/services/trackedorders"
	"github.com/BearBump/OrderTrack/internal/storage/pgmarket"
)

const (
	modeDirect = "direct"
	modeKafka  = "kafka"
)

type marketAPIApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   marketAPIOpts
	api    *ordersapi.OrdersAPI
	db     *pgmarket.Storage
	log    *zap.Logger

	closers []func() error
}

func mustBootstrapMarketAPI() *marketAPIApp {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		swaggerPath = "api/swagger.json"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	log := logger.New(cfg.LogLevel)

	httpAddr := cfg.MarketAPI.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	cacheTTL := time.Duration(cfg.MarketAPI.TrackedOrderTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	notifyStatuses, err := parseNotifyStatuses(cfg.Notifications.NotifyStatuses)
	if err != nil {
		panic(err)
	}

	st := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second, log)
	app := &marketAPIApp{db: st, log: log}
	app.closers = append(app.closers, func() error { st.Close(); return nil })

	rc := rediscache.NewClient(rediscache.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	app.closers = append(app.closers, rc.Close)

	history := orderhistory.New(st, log)
	notes := notifications.New(st, log).
		WithRateLimit(rediscache.NewRateLimiter(rc, "ratelimit:shipping_progress"),
			cfg.Notifications.RateLimitPerWindow, rateLimitWindow(cfg.Notifications))

	var sender trackedorders.NotificationSender = notes
	switch mode := cfg.Notifications.Mode; mode {
	case "", modeDirect:
	case modeKafka:
		producer := kafka.NewProducer(cfg.Kafka.Brokers())
		app.closers = append(app.closers, producer.Close)
		sender = notifications.NewPublisher(producer, cfg.Kafka.ShippingProgressTopicName)
	default:
		panic(fmt.Sprintf("unknown notifications mode %q", mode))
	}

	tracked := trackedorders.New(st, history, sender, log).
		WithCache(rediscache.New(rc), cacheTTL).
		WithNotifyStatuses(notifyStatuses)

	app.api = ordersapi.New(tracked, history, notes, log)
	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app.opts = marketAPIOpts{
		httpAddr:        httpAddr,
		swaggerPath:     swaggerPath,
		shutdownTimeout: time.Duration(cfg.MarketAPI.ShutdownTimeoutSeconds) * time.Second,
	}

	log.Info("market-api configured",
		zap.String("notifications_mode", cfg.Notifications.Mode),
		zap.Strings("notify_statuses", cfg.Notifications.NotifyStatuses),
		zap.Duration("cache_ttl", cacheTTL),
	)
	return app
}

func parseNotifyStatuses(raw []string) ([]models.OrderStatus, error) {
	out := make([]models.OrderStatus, 0, len(raw))
	for _, s := range raw {
		st, err := models.ParseOrderStatus(s)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func rateLimitWindow(cfg config.NotificationsConfig) time.Duration {
	w := time.Duration(cfg.RateLimitWindowSecs) * time.Second
	if w <= 0 {
		w = time.Minute
	}
	return w
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration, log *zap.Logger) *pgmarket.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgmarket.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		log.Warn("postgres is not ready yet", zap.Error(err))
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func (a *marketAPIApp) Run() error {
	return runMarketAPI(a.ctx, a.opts, a.api, a.db, a.log)
}

func (a *marketAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	_ = a.log.Sync()
}
