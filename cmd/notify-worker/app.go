package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/config"
	"github.com/BearBump/OrderTrack/internal/broker/kafka"
	"github.com/BearBump/OrderTrack/internal/broker/messages"
	"github.com/BearBump/OrderTrack/internal/cache/rediscache"
	"github.com/BearBump/OrderTrack/internal/services/dispatcher"
	"github.com/BearBump/OrderTrack/internal/services/notifications"
	"github.com/BearBump/OrderTrack/internal/storage/pgmarket"
)

type workerFactories struct {
	newStore       func(cfg *config.Config) (store notifications.Store, closeFn func(), err error)
	newConsumer    func(cfg *config.Config) (dispatcher.Consumer, func() error)
	newRateLimiter func(cfg *config.Config) (notifications.RateLimiter, func() error)
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newStore: func(cfg *config.Config) (notifications.Store, func(), error) {
			st, err := pgmarket.New(cfg.Database.ConnString())
			if err != nil {
				return nil, nil, err
			}
			return st, st.Close, nil
		},
		newConsumer: func(cfg *config.Config) (dispatcher.Consumer, func() error) {
			c := kafka.NewConsumer(cfg.Kafka.Brokers(), shippingTopic(cfg), consumerGroup(cfg))
			return c, c.Close
		},
		newRateLimiter: func(cfg *config.Config) (notifications.RateLimiter, func() error) {
			rc := rediscache.NewClient(rediscache.Options{
				Addr:     cfg.Redis.Addr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			return rediscache.NewRateLimiter(rc, "ratelimit:shipping_progress"), rc.Close
		},
	}
}

func shippingTopic(cfg *config.Config) string {
	if cfg.Kafka.ShippingProgressTopicName != "" {
		return cfg.Kafka.ShippingProgressTopicName
	}
	return messages.TopicShippingProgress
}

func consumerGroup(cfg *config.Config) string {
	if cfg.Kafka.ConsumerGroup != "" {
		return cfg.Kafka.ConsumerGroup
	}
	return "notify-worker"
}

func backoffConfig(n config.NotificationsConfig) dispatcher.BackoffConfig {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return dispatcher.BackoffConfig{
		Backoff1: ms(n.WorkerBackoff1Ms),
		Backoff2: ms(n.WorkerBackoff2Ms),
		Backoff3: ms(n.WorkerBackoff3Ms),
		Jitter:   100 * time.Millisecond,
	}
}

// RunNotifyWorker consumes shipping progress requests and records them as
// notifications until ctx is done. onReady receives the dispatcher before
// consuming starts.
func RunNotifyWorker(ctx context.Context, cfg *config.Config, f workerFactories, log *zap.Logger, onReady func(*dispatcher.Dispatcher)) error {
	if log == nil {
		log = zap.NewNop()
	}

	store, closeStore, err := f.newStore(cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	rl, closeRL := f.newRateLimiter(cfg)
	if closeRL != nil {
		defer func() { _ = closeRL() }()
	}
	window := time.Duration(cfg.Notifications.RateLimitWindowSecs) * time.Second
	if window <= 0 {
		window = time.Minute
	}
	sender := notifications.New(store, log).WithRateLimit(rl, cfg.Notifications.RateLimitPerWindow, window)

	consumer, closeConsumer := f.newConsumer(cfg)
	if closeConsumer != nil {
		defer func() { _ = closeConsumer() }()
	}

	d := dispatcher.New(consumer, sender, log).
		WithSettings(cfg.Notifications.WorkerMaxAttempts, 0).
		WithBackoff(backoffConfig(cfg.Notifications))
	if onReady != nil {
		onReady(d)
	}

	log.Info("notify worker started",
		zap.String("topic", shippingTopic(cfg)),
		zap.String("group", consumerGroup(cfg)),
	)
	return d.Run(ctx)
}
