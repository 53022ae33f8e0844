// Package server assembles the HomeKeeper services and their HTTP surface.
package server

import (
	"context"
	"errors"
	"fmt"

	"homekeeper/internal/config"
	"homekeeper/internal/domain/auth"
	"homekeeper/internal/domain/item"
	"homekeeper/internal/domain/maintenance"
	"homekeeper/internal/domain/notification"
	"homekeeper/internal/domain/stats"
	"homekeeper/internal/domain/webhook"
	"homekeeper/internal/identity"
	"homekeeper/internal/metrics"
	"homekeeper/internal/pkg/jwt"
	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/store"
)

// App holds every long-lived dependency. The commands share it so seed data
// and sweeps go through the same services the API uses.
type App struct {
	Config *config.Config
	Store  store.Store

	Identity      *identity.Local
	Metrics       *metrics.Metrics
	Items         *item.Service
	Maintenance   *maintenance.Service
	Notifications *notification.Service
	Cleanup       *notification.CleanupService
	Stats         *stats.Service
	Webhooks      *webhook.Service
	Inbound       *webhook.Inbound
	Relay         *webhook.Relay
	Hub           *webhook.Hub
	Auth          *auth.Service

	publisher webhook.Publisher
}

// Build opens the configured store and wires the services over it.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	s, err := store.Open(ctx, store.Config{
		Driver:         cfg.Store.Driver,
		DatabaseURL:    cfg.Store.DatabaseURL,
		RedisURL:       cfg.Store.RedisURL,
		RedisKeyPrefix: cfg.Store.RedisKeyPrefix,
		RedisPoolSize:  cfg.Store.RedisPoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var publisher webhook.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = webhook.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.EventsTopic)
	}

	return Wire(cfg, s, publisher, metrics.New()), nil
}

// Wire builds the services over an open store. publisher may be nil.
func Wire(cfg *config.Config, s store.Store, publisher webhook.Publisher, m *metrics.Metrics) *App {
	tokens := jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	idp := identity.NewLocal(s, tokens)

	itemRepo := item.NewRepository(s)
	maintRepo := maintenance.NewRepository(s)
	notifRepo := notification.NewRepository(s)
	configs := webhook.NewConfigRepository(s)

	hub := webhook.NewHub()
	relay := webhook.NewRelay(configs, webhook.NewLogRepository(s), hub, publisher, m, cfg.Webhook.Timeout)
	notifications := notification.NewService(notifRepo)
	statsSvc := stats.NewService(itemRepo, notifications)

	return &App{
		Config:        cfg,
		Store:         s,
		Identity:      idp,
		Metrics:       m,
		Items:         item.NewService(itemRepo, maintRepo, relay, m),
		Maintenance:   maintenance.NewService(maintRepo, itemRepo, m),
		Notifications: notifications,
		Cleanup:       notification.NewCleanupService(notifRepo),
		Stats:         statsSvc,
		Webhooks:      webhook.NewService(configs),
		Inbound:       webhook.NewInbound(relay, notifications, webhook.PriceBandFinder{}, statsSvc),
		Relay:         relay,
		Hub:           hub,
		Auth:          auth.NewService(idp, idp, notifications),
		publisher:     publisher,
	}
}

// Close waits for in-flight webhook deliveries, then releases the publisher
// and the store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if err := a.Relay.Wait(ctx); err != nil {
		logger.Warn(ctx, "Webhook deliveries still in flight at shutdown", "error", err)
		errs = append(errs, err)
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
