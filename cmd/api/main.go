package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/catalog"
	"github.com/ariefcatur/boutique-orders/internal/config"
	"github.com/ariefcatur/boutique-orders/internal/httpx"
	"github.com/ariefcatur/boutique-orders/internal/identity"
	kafkax "github.com/ariefcatur/boutique-orders/internal/kafka"
	"github.com/ariefcatur/boutique-orders/internal/logging"
	"github.com/ariefcatur/boutique-orders/internal/orders"
	"github.com/ariefcatur/boutique-orders/internal/postgres"
	"github.com/ariefcatur/boutique-orders/internal/redisx"
	"github.com/ariefcatur/boutique-orders/internal/rentals"
	"github.com/ariefcatur/boutique-orders/internal/reporting"
	"github.com/ariefcatur/boutique-orders/internal/seed"
	"github.com/ariefcatur/boutique-orders/internal/store"
	"github.com/ariefcatur/boutique-orders/internal/store/memory"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.ServiceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("api stopped", zap.Error(err))
	}
	log.Info("api has been gracefully shut down")
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	hasher := identity.Hasher{}
	if cfg.SeedDemoData {
		loaded, err := seed.Load(ctx, db, hasher)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("demo data", zap.Bool("loaded", loaded))
	}

	// Background work (the producer loop) outlives request handling so the
	// inbox can be drained after the HTTP server stops.
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	var events orders.Publisher
	var prod *kafkax.Producer
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		prod = kafkax.NewProducer(brokers, 1024, log.Named("producer"))
		prod.Start(bgCtx)
		events = prod
		log.Info("kafka publishing enabled", zap.Strings("brokers", brokers))
	}

	deps := httpx.Deps{Log: log}
	if cfg.RedisAddr != "" {
		rdb := redisx.New(cfg.RedisAddr)
		defer rdb.Close()
		if err := redisx.Ping(ctx, rdb); err != nil {
			log.Warn("redis unreachable, continuing", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		deps.Idem = redisx.Idempotency{RDB: rdb}
		deps.Inbox = redisx.Inbox{RDB: rdb}
	}

	rent := rentals.New(db)
	deps.Catalog = catalog.New(db)
	deps.Rentals = rent
	deps.Orders = orders.New(db, rent, events, cfg.ServiceName, log.Named("orders"))
	deps.Identity = identity.NewService(db, identity.NewTokens(cfg.JWTSecret, cfg.TokenTTL, cfg.ServiceName), hasher)
	deps.Reporting = reporting.New(db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpx.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	err = g.Wait()

	if prod != nil {
		prod.Close() // flush the inbox, then close the writer
		prod.WaitClosed()
	}
	return err
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Store, error) {
	if cfg.StorageDriver != config.DriverPostgres {
		log.Info("using in-memory storage")
		return memory.New(), nil
	}
	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return postgres.NewStore(pool), nil
}
