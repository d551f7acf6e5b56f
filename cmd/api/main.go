package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/config"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/fulfillment"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-order-fulfillment.git/internal/kafka"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/ledger"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/notify"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/obs"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/postgres"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/redisx"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger, err := obs.NewLogger(cfg.ServiceName)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store backend
	var (
		products store.ProductStore
		orderSt  store.OrderStore
	)
	switch cfg.StoreDriver {
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		products = store.NewPostgresProducts(db)
		orderSt = store.NewPostgresOrders(db)
	default:
		products = store.NewMemoryProducts()
		orderSt = store.NewMemoryOrders()
	}

	// Redis (cache status order)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Notifier: kafka kalau broker di-set, selain itu log saja
	var notifier notify.Notifier
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderLifecycle, cfg.NotifyBuffer, logger)
		// Jalan di context.Background(): handler masih bisa Publish
		// selama drain; shutdown lewat Close() setelah g.Wait().
		prod.Start(context.Background())
		notifier = &notify.KafkaNotifier{Producer: prod, Service: cfg.ServiceName}
	} else {
		notifier = &notify.LogNotifier{Log: logger}
	}

	// Status order di-cache; transisi dari reconciler juga harus
	// membuang entri basi, bukan cuma transisi via HTTP.
	notifier = notify.Fanout{notifier, &notify.CacheInvalidator{Redis: rdb, Log: logger}}

	// Core
	led := ledger.New(products, logger)
	coord := fulfillment.NewCoordinator(led, orderSt, notifier, logger)
	rec := fulfillment.NewReconciler(coord, cfg.ReconcileInterval, logger)

	// HTTP
	router := httpx.NewRouter()
	(&httpx.ProductsHandler{Ledger: led, Log: logger}).Register(router)
	(&httpx.OrdersHandler{Coordinator: coord, Redis: rdb, Log: logger}).Register(router)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return rec.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("exit", zap.Error(err))
	}
	if prod != nil {
		prod.Close()
		prod.WaitClosed() // producer loop flush sisa event dulu
	}
}
