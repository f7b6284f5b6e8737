package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BearBump/OrderTrack/config"
	"github.com/BearBump/OrderTrack/internal/logger"
	"github.com/BearBump/OrderTrack/internal/services/dispatcher"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpOpts := workerHTTPOpts{httpAddr: cfg.Notifications.WorkerHTTPAddr, cfg: cfg}
	ready := make(chan *dispatcher.Dispatcher, 1)
	go func() {
		select {
		case d := <-ready:
			httpOpts.stats = d
		case <-ctx.Done():
			return
		}
		if err := runWorkerHTTPServer(ctx, httpOpts); err != nil {
			log.Error("worker http server", zap.Error(err))
		}
	}()

	err = RunNotifyWorker(ctx, cfg, defaultWorkerFactories(), log, func(d *dispatcher.Dispatcher) { ready <- d })
	if err != nil && !errors.Is(err, context.Canceled) {
		panic(err)
	}
}
