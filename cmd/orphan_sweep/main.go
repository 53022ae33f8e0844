package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"homekeeper/internal/config"
	"homekeeper/internal/domain/maintenance"
	"homekeeper/internal/domain/notification"
	"homekeeper/internal/domain/webhook"
	"homekeeper/internal/pkg/logger"
	"homekeeper/internal/server"
)

// orphan_sweep runs the maintenance read-path repair for every user, then
// trims notification history beyond what anyone can list and caps the
// global webhook log.
func main() {
	configPath := flag.String("config", "", "YAML config file")
	keep := flag.Int("keep-notifications", notification.ListLimit, "notifications kept per user")
	keepLogs := flag.Int("keep-webhook-logs", webhook.LogRetention, "webhook log entries kept")
	flag.Parse()

	if err := run(*configPath, *keep, *keepLogs); err != nil {
		log.Fatalf("orphan sweep: %v", err)
	}
}

func run(configPath string, keep, keepLogs int) (err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	app, err := server.Build(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		if cerr := app.Close(ctx); cerr != nil && err == nil {
			err = fmt.Errorf("close app: %w", cerr)
		}
	}()

	userIDs, err := app.Identity.UserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var total maintenance.SweepReport
	pruned := 0
	for _, uid := range userIDs {
		report, err := app.Maintenance.Reconcile(ctx, uid)
		if err != nil {
			logger.Error(ctx, "Reconcile failed", "user_id", uid, "error", err)
			continue
		}
		total.Add(report)

		n, err := app.Cleanup.PruneBeyond(ctx, uid, keep)
		if err != nil {
			logger.Error(ctx, "Notification prune failed", "user_id", uid, "error", err)
			continue
		}
		pruned += n
	}

	trimmed, err := app.Relay.TrimLogs(ctx, keepLogs)
	if err != nil {
		logger.Error(ctx, "Webhook log trim failed", "error", err)
	}

	log.Printf("orphan sweep completed: users=%d items=%d orphans=%d repaired=%d notifications_pruned=%d webhook_logs_trimmed=%d",
		len(userIDs), total.Items, total.Orphans, total.Repaired, pruned, trimmed)
	return nil
}
