package billing

import "time"

// NormalizedSubscription is the provider-agnostic shape used by the billing
// service when syncing external subscription state into the clinic record.
type NormalizedSubscription struct {
	ClinicID               uint
	Provider               string
	ProviderCustomerID     string
	ProviderSubscriptionID string
	// PlanTier is empty when the event does not change the plan.
	PlanTier           string
	Status             string
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	GracePeriodEnd     *time.Time
	CanceledAt         *time.Time
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	ClinicID        *uint
	PayloadJSON     string
	SignatureValid  bool
}
