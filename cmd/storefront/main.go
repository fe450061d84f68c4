// @title        WorksTeamWear Storefront API
// @version      1.0
// @description  Team apparel storefront: catalog, cart, checkout, order lifecycle and delivery tracking.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/address"
	"github.com/worksteamwear/storefront/internal/cart"
	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/chatbot"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/customer"
	"github.com/worksteamwear/storefront/internal/design"
	"github.com/worksteamwear/storefront/internal/feedback"
	"github.com/worksteamwear/storefront/internal/httpx"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/kafkax"
	"github.com/worksteamwear/storefront/internal/notify"
	"github.com/worksteamwear/storefront/internal/order"
	"github.com/worksteamwear/storefront/internal/postgres"
	"github.com/worksteamwear/storefront/internal/redisx"
	"github.com/worksteamwear/storefront/internal/shipping"
)

func main() {
	log, _ := zap.NewProduction()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	settings := config.DefaultSettings()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect failed", zap.Error(err))
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer func() { _ = rdb.Close() }()

	producer := kafkax.NewProducer(cfg.KafkaBrokers, cfg.NotifyTopic, 256)
	producer.Start(ctx)

	notifier := &notify.Kafka{Producer: producer, ServiceName: cfg.ServiceName, Log: log}

	products := catalog.NewPGRepo(db)
	stock := inventory.NewPGStore(db)
	rates := shipping.NewPGStore(db)
	ship := shipping.NewService(rates, settings, log)
	orders := order.NewPGRepo(db)
	engine := order.NewEngine(orders, stock, products, ship, notifier, settings, nil, log)
	carts := cart.NewService(cart.NewPGStore(db), ship, settings)
	customers := customer.NewService(customer.NewPGRepo(db))
	resolver := address.NewResolver(rdb, cfg.PSGCBaseURL, cfg.PSGCLocalDir, log)

	bot, err := chatbot.New()
	if err != nil {
		log.Fatal("chatbot knowledge base failed to load", zap.Error(err))
	}
	chat := chatbot.NewService(bot, chatbot.NewPGStore(db))

	designs, err := design.NewGenerator()
	if err != nil {
		log.Fatal("design dataset failed to load", zap.Error(err))
	}

	router := httpx.NewRouter(httpx.Deps{
		Products:  products,
		Inventory: stock,
		Orders:    orders,
		Engine:    engine,
		Shipping:  ship,
		Rates:     rates,
		Carts:     carts,
		Customers: customers,
		Chat:      chat,
		Designs:   designs,
		Addresses: resolver,
		Feedback:  feedback.NewPGStore(db),
		Settings:  settings,
		Log:       log,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server shutdown", zap.Error(err))
	}
	producer.WaitClosed()
}
