package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/boutique-orders/internal/config"
	kafkax "github.com/ariefcatur/boutique-orders/internal/kafka"
	"github.com/ariefcatur/boutique-orders/internal/logging"
	"github.com/ariefcatur/boutique-orders/internal/notify"
	"github.com/ariefcatur/boutique-orders/internal/redisx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName+"-notifier")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	brokers := cfg.Brokers()
	if len(brokers) == 0 || cfg.RedisAddr == "" {
		log.Fatal("notifier needs KAFKA_BROKERS and REDIS_ADDR")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := redisx.Ping(ctx, rdb); err != nil {
		log.Fatal("redis", zap.Error(err))
	}

	svc := notify.New(
		redisx.Dedup{RDB: rdb, Service: "notifier"},
		redisx.Inbox{RDB: rdb},
		log,
	)

	topics := notify.Topics()
	cons := kafkax.NewConsumer(brokers, cfg.NotifierGroup, topics, cfg.NotifierWorkers, log.Named("consumer"))
	log.Info("notifier consumer started",
		zap.String("group", cfg.NotifierGroup),
		zap.Strings("topics", topics),
		zap.Int("workers", cfg.NotifierWorkers))

	if err := cons.Start(ctx, svc.Handle); err != nil {
		log.Error("consumer exit", zap.Error(err))
		os.Exit(1)
	}
	log.Info("notifier stopped")
}
