package webhook

import (
	"context"
	"fmt"

	"homekeeper/internal/domain/notification"
	"homekeeper/internal/domain/stats"
	"homekeeper/internal/pkg/logger"
)

type NotificationRecorder interface {
	Record(ctx context.Context, req *notification.RecordRequest) (*notification.Notification, error)
}

type ReportSource interface {
	ForUser(ctx context.Context, userID string) (*stats.Report, error)
}

// Inbound handles the callbacks the automation platform makes into the
// service. Each call is logged before it is answered.
type Inbound struct {
	relay         *Relay
	notifications NotificationRecorder
	finder        ReplacementFinder
	reports       ReportSource
}

func NewInbound(relay *Relay, notifications NotificationRecorder, finder ReplacementFinder, reports ReportSource) *Inbound {
	if finder == nil {
		finder = PriceBandFinder{}
	}
	return &Inbound{
		relay:         relay,
		notifications: notifications,
		finder:        finder,
		reports:       reports,
	}
}

func (in *Inbound) NewItem(ctx context.Context, p *itemPayload) error {
	logger.Info(ctx, "Webhook: new-item triggered", "user_id", p.UserID, "item", p.Item.Name)
	return in.relay.Received(ctx, EventNewItem, p.UserID, "New item added: "+p.Item.Name)
}

func (in *Inbound) MaintenanceReminder(ctx context.Context, p *deliveryPayload) error {
	logger.Info(ctx, "Webhook: maintenance-reminder triggered", "user_id", p.UserID)
	if err := in.recordDelivery(ctx, notification.TypeMaintenance, p); err != nil {
		return err
	}
	return in.relay.Received(ctx, EventMaintenanceReminder, p.UserID, "Maintenance reminder check completed")
}

func (in *Inbound) WarrantyAlert(ctx context.Context, p *deliveryPayload) error {
	logger.Info(ctx, "Webhook: warranty-alert triggered", "user_id", p.UserID)
	if err := in.recordDelivery(ctx, notification.TypeWarranty, p); err != nil {
		return err
	}
	return in.relay.Received(ctx, EventWarrantyAlert, p.UserID, "Warranty alert check completed")
}

func (in *Inbound) FindReplacement(ctx context.Context, p *itemPayload) ([]Offer, error) {
	if p.Item.Name == "" {
		return nil, ErrItemNameRequired
	}
	logger.Info(ctx, "Webhook: find-replacement triggered", "user_id", p.UserID, "item", p.Item.Name)

	offers, err := in.finder.Search(ctx, p.Item, p.UserID)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf("Found %d replacement options for %s", len(offers), p.Item.Name)
	if err := in.relay.Received(ctx, EventFindReplacement, p.UserID, msg); err != nil {
		return nil, err
	}
	return offers, nil
}

// AnnualReport returns the user's stats when they own anything; a report
// that cannot be computed is logged and left out.
func (in *Inbound) AnnualReport(ctx context.Context, p *reportPayload) (*stats.Report, error) {
	logger.Info(ctx, "Webhook: annual-report triggered", "user_id", p.UserID)

	var report *stats.Report
	if p.UserID != "" && in.reports != nil {
		r, err := in.reports.ForUser(ctx, p.UserID)
		switch {
		case err != nil:
			logger.Warn(ctx, "Annual report stats unavailable", "user_id", p.UserID, "error", err)
		case r.TotalItems > 0:
			report = r
		}
	}

	if err := in.relay.Received(ctx, EventAnnualReport, p.UserID, "Annual report generation completed"); err != nil {
		return nil, err
	}
	return report, nil
}

func (in *Inbound) recordDelivery(ctx context.Context, typ notification.Type, p *deliveryPayload) error {
	if in.notifications == nil || p.UserID == "" || p.Recipient == "" || p.Message == "" {
		return nil
	}
	_, err := in.notifications.Record(ctx, &notification.RecordRequest{
		UserID:    p.UserID,
		ItemID:    p.ItemID,
		Type:      typ,
		Recipient: p.Recipient,
		Status:    p.Status,
		Message:   p.Message,
	})
	return err
}
