// The sweeper runs the daily order maintenance pass once and exits. Schedule
// it with cron or a Kubernetes CronJob.
package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/worksteamwear/storefront/internal/catalog"
	"github.com/worksteamwear/storefront/internal/config"
	"github.com/worksteamwear/storefront/internal/inventory"
	"github.com/worksteamwear/storefront/internal/kafkax"
	"github.com/worksteamwear/storefront/internal/notify"
	"github.com/worksteamwear/storefront/internal/order"
	"github.com/worksteamwear/storefront/internal/postgres"
	"github.com/worksteamwear/storefront/internal/shipping"
)

func main() {
	log, _ := zap.NewProduction()
	defer func() { _ = log.Sync() }()

	cfg := config.Load()
	settings := config.DefaultSettings()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect failed", zap.Error(err))
	}
	defer db.Close()

	producer := kafkax.NewProducer(cfg.KafkaBrokers, cfg.NotifyTopic, 256)
	producer.Start(ctx)
	notifier := &notify.Kafka{Producer: producer, ServiceName: cfg.ServiceName + "-sweeper", Log: log}

	rates := shipping.NewPGStore(db)
	engine := order.NewEngine(
		order.NewPGRepo(db),
		inventory.NewPGStore(db),
		catalog.NewPGRepo(db),
		shipping.NewService(rates, settings, log),
		notifier,
		settings,
		nil,
		log,
	)

	res, err := engine.Sweep(ctx)
	if err != nil {
		log.Fatal("sweep failed", zap.Error(err))
	}
	log.Info("sweep finished",
		zap.Int("scanned", res.Scanned),
		zap.Int("advanced", res.Advanced),
		zap.Int("failed", res.Failed))

	producer.Close()
	producer.WaitClosed()
}
