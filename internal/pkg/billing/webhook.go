package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultProvider = "billing"

// Event types understood by the webhook endpoint.
const (
	EventSubscriptionCreated  = "subscription.created"
	EventSubscriptionUpdated  = "subscription.updated"
	EventSubscriptionCanceled = "subscription.canceled"
	EventInvoicePaid          = "invoice.paid"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// WebhookEvent is the provider-neutral notification body.
type WebhookEvent struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Provider string           `json:"provider"`
	Data     WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ClinicID               uint       `json:"clinic_id"`
	ProviderCustomerID     string     `json:"customer_id"`
	ProviderSubscriptionID string     `json:"subscription_id"`
	PlanTier               string     `json:"plan_tier"`
	Status                 string     `json:"status"`
	CurrentPeriodStart     *time.Time `json:"current_period_start"`
	CurrentPeriodEnd       *time.Time `json:"current_period_end"`
	GracePeriodEnd         *time.Time `json:"grace_period_end"`
	CanceledAt             *time.Time `json:"canceled_at"`
}

func ParseWebhookEvent(raw []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	ev.Type = strings.ToLower(strings.TrimSpace(ev.Type))
	ev.Provider = strings.ToLower(strings.TrimSpace(ev.Provider))
	if ev.Provider == "" {
		ev.Provider = defaultProvider
	}
	if ev.Type == "" {
		return nil, errors.New("webhook event type is required")
	}
	return &ev, nil
}

// IsHandled reports whether the event type changes subscription state.
func (ev *WebhookEvent) IsHandled() bool {
	switch ev.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionCanceled,
		EventInvoicePaid, EventInvoicePaymentFailed:
		return true
	default:
		return false
	}
}

// Normalize converts the event into a subscription sync request. The event
// type overrides the payload status for invoice and cancellation events.
func (ev *WebhookEvent) Normalize() (NormalizedSubscription, error) {
	if ev.Data.ClinicID == 0 {
		return NormalizedSubscription{}, errors.New("clinic_id is required")
	}
	status := ev.Data.Status
	switch ev.Type {
	case EventSubscriptionCanceled:
		status = "canceled"
	case EventInvoicePaid:
		status = "active"
	case EventInvoicePaymentFailed:
		status = "past_due"
	}
	return NormalizedSubscription{
		ClinicID:               ev.Data.ClinicID,
		Provider:               ev.Provider,
		ProviderCustomerID:     strings.TrimSpace(ev.Data.ProviderCustomerID),
		ProviderSubscriptionID: strings.TrimSpace(ev.Data.ProviderSubscriptionID),
		PlanTier:               ev.Data.PlanTier,
		Status:                 status,
		CurrentPeriodStart:     ev.Data.CurrentPeriodStart,
		CurrentPeriodEnd:       ev.Data.CurrentPeriodEnd,
		GracePeriodEnd:         ev.Data.GracePeriodEnd,
		CanceledAt:             ev.Data.CanceledAt,
	}, nil
}
