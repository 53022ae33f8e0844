package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"homekeeper/internal/domain/item"
	"homekeeper/internal/metrics"
	"homekeeper/internal/pkg/apperr"
	"homekeeper/internal/pkg/logger"
)

const maxResponseDrain = 64 << 10

// Relay delivers domain events to user-configured URLs without holding up
// the request that produced them. It implements item.Notifier.
type Relay struct {
	configs   *ConfigRepository
	logs      *LogRepository
	hub       *Hub
	publisher Publisher
	metrics   *metrics.Metrics
	client    *http.Client
	timeout   time.Duration
	now       func() time.Time

	wg sync.WaitGroup
}

// NewRelay wires a relay; hub, publisher and m may be nil.
func NewRelay(configs *ConfigRepository, logs *LogRepository, hub *Hub, publisher Publisher, m *metrics.Metrics, timeout time.Duration) *Relay {
	return &Relay{
		configs:   configs,
		logs:      logs,
		hub:       hub,
		publisher: publisher,
		metrics:   m,
		client:    &http.Client{},
		timeout:   timeout,
		now:       time.Now,
	}
}

func (r *Relay) ItemCreated(ctx context.Context, userID string, it item.Item) {
	r.Dispatch(ctx, EventNewItem, userID, it)
}

// Dispatch returns immediately. Delivery runs detached from ctx's
// cancellation but keeps its values (request id, logger).
func (r *Relay) Dispatch(ctx context.Context, event, userID string, it item.Item) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.deliver(context.WithoutCancel(ctx), event, userID, it)
	}()
}

// Wait blocks until in-flight dispatches finish or ctx is done.
func (r *Relay) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Relay) deliver(ctx context.Context, event, userID string, it item.Item) {
	sentAt := r.now().UTC()

	if r.publisher != nil {
		ev := DomainEvent{Event: event, UserID: userID, Payload: it, OccurredAt: sentAt}
		if err := r.publisher.Publish(ctx, ev); err != nil {
			logger.Warn(ctx, "Event publish failed", "event", event, "error", err)
		}
	}

	cfg, err := r.configs.Get(ctx, userID)
	if err != nil {
		logger.Error(ctx, "Webhook trigger error", "event", event, "user_id", userID, "error", err)
		return
	}
	if cfg.NewItemURL == "" {
		return
	}

	body := outboundPayload{
		Event:  event,
		UserID: userID,
		Item:   it,
		SentAt: sentAt.Format(time.RFC3339Nano),
	}
	entry := &LogEntry{
		ID:        uuid.NewString(),
		Endpoint:  cfg.NewItemURL,
		Direction: DirectionOutbound,
		UserID:    userID,
		Timestamp: sentAt,
	}

	code, err := r.post(ctx, cfg.NewItemURL, body)
	entry.StatusCode = code
	if err != nil {
		entry.Status = StatusFailed
		entry.Message = apperr.Message(err, "Webhook delivery failed")
		logger.Warn(ctx, "Webhook dispatch failed", "event", event, "user_id", userID, "status_code", code, "error", err)
	} else {
		entry.Status = StatusSuccess
		entry.Message = fmt.Sprintf("Delivered %s for %s", event, it.Name)
		logger.Info(ctx, "Webhook dispatched", "event", event, "user_id", userID, "item_id", it.ID)
	}
	r.metrics.WebhookDispatched(event, entry.Status)
	r.record(ctx, entry)
}

func (r *Relay) post(ctx context.Context, url string, body any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, apperr.WebhookDelivery(err, "Webhook payload could not be encoded")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, apperr.WebhookDelivery(err, "Webhook URL is invalid")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, apperr.WebhookDelivery(err, "Webhook endpoint unreachable")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseDrain))

	if resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, apperr.WebhookDelivery(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			fmt.Sprintf("Webhook endpoint responded %d", resp.StatusCode),
		)
	}
	return resp.StatusCode, nil
}

// Received logs an inbound call from the automation platform.
func (r *Relay) Received(ctx context.Context, event, userID, message string) error {
	r.metrics.WebhookReceived(event)
	return r.record(ctx, &LogEntry{
		ID:        uuid.NewString(),
		Endpoint:  "/api/webhook/" + event,
		Direction: DirectionInbound,
		UserID:    userID,
		Status:    StatusSuccess,
		Message:   message,
		Timestamp: r.now().UTC(),
	})
}

// Recent returns the newest log entries.
func (r *Relay) Recent(ctx context.Context) ([]LogEntry, error) {
	return r.logs.Recent(ctx, LogLimit)
}

// TrimLogs drops all but the newest keep log entries.
func (r *Relay) TrimLogs(ctx context.Context, keep int) (int, error) {
	n, err := r.logs.Trim(ctx, keep)
	if err != nil {
		return n, err
	}
	if n > 0 {
		logger.Info(ctx, "Trimmed webhook log", "removed", n, "kept", keep)
	}
	return n, nil
}

func (r *Relay) record(ctx context.Context, entry *LogEntry) error {
	if err := r.logs.Append(ctx, entry); err != nil {
		logger.Warn(ctx, "Failed to write webhook log", "endpoint", entry.Endpoint, "error", err)
		return err
	}
	r.hub.Broadcast(entry)
	return nil
}
