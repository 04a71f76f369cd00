package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// Service writes the stored subscription record: trials at signup, provider
// webhook synchronization and administrator plan changes. It never writes
// derived statuses; those are computed at read time by the subscription package.
type Service struct {
	repo Repository
	cfg  subscription.Config
	now  func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a billing service from an injected repository.
func NewService(repo Repository, cfg subscription.Config, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		cfg:  cfg,
		now:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromDB creates a billing service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB, cfg subscription.Config, opts ...Option) *Service {
	return NewService(NewRepository(db), cfg, opts...)
}

// NewTrial builds the record a clinic starts with at signup. The caller
// persists it together with the clinic.
func (s *Service) NewTrial() *models.Subscription {
	now := s.now()
	trialEnd := now.AddDate(0, 0, s.cfg.TrialDurationDays)
	return &models.Subscription{
		Status:             models.SubscriptionStatusTrial,
		PlanTier:           string(s.cfg.TrialPlanTier()),
		TrialEnd:           &trialEnd,
		CurrentPeriodStart: &now,
	}
}

// SyncSubscription applies a normalized provider state to the clinic record,
// creating it when the clinic has none yet.
func (s *Service) SyncSubscription(ctx context.Context, in NormalizedSubscription) (*models.Subscription, error) {
	if in.ClinicID == 0 {
		return nil, errors.New("clinic_id is required")
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.GetSubscriptionByClinic(ctx, in.ClinicID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		sub = &models.Subscription{ClinicID: in.ClinicID, PlanTier: string(subscription.DefaultTier)}
	case err != nil:
		return nil, err
	}

	if in.PlanTier != "" {
		if subscription.NormalizeTier(sub.PlanTier) == subscription.TierFree {
			log.Infof("[Billing] Clinic %d keeps admin assigned free tier, ignoring provider tier %q", in.ClinicID, in.PlanTier)
		} else {
			tier, err := normalizePlan(in.PlanTier)
			if err != nil {
				return nil, err
			}
			sub.PlanTier = tier
		}
	}

	now := s.now()
	sub.Status = status
	if in.CurrentPeriodStart != nil {
		sub.CurrentPeriodStart = in.CurrentPeriodStart
	}
	if in.CurrentPeriodEnd != nil {
		sub.CurrentPeriodEnd = in.CurrentPeriodEnd
	}

	switch status {
	case models.SubscriptionStatusTrial:
		if sub.TrialEnd == nil && in.CurrentPeriodEnd != nil {
			sub.TrialEnd = in.CurrentPeriodEnd
		}
	case models.SubscriptionStatusActive:
		sub.CanceledAt = nil
		// a fresh period supersedes any grace window of the previous one
		if in.CurrentPeriodEnd != nil {
			sub.GracePeriodEnd = nil
		}
	case models.SubscriptionStatusCanceled:
		if in.CanceledAt != nil {
			sub.CanceledAt = in.CanceledAt
		} else if sub.CanceledAt == nil {
			sub.CanceledAt = &now
		}
	}
	if in.GracePeriodEnd != nil {
		sub.GracePeriodEnd = in.GracePeriodEnd
	}

	if p := strings.ToLower(strings.TrimSpace(in.Provider)); p != "" {
		sub.Provider = p
	}
	if in.ProviderCustomerID != "" {
		sub.ProviderCustomerID = in.ProviderCustomerID
	}
	if in.ProviderSubscriptionID != "" {
		sub.ProviderSubscriptionID = in.ProviderSubscriptionID
	}

	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}
	log.Infof("[Billing] Clinic %d synced: status=%s plan=%s", sub.ClinicID, sub.Status, sub.PlanTier)
	return sub, nil
}

// ChangePlan is the administrator override of a clinic's plan tier. Unlike
// provider events it may assign the free tier.
func (s *Service) ChangePlan(ctx context.Context, clinicID uint, tier string) (*models.Subscription, error) {
	raw := strings.ToLower(strings.TrimSpace(tier))
	if !subscription.IsKnownTier(raw) {
		return nil, fmt.Errorf("%w: unknown plan tier %q", ErrInvalidPlan, tier)
	}

	sub, err := s.repo.GetSubscriptionByClinic(ctx, clinicID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: clinic %d", ErrNoSubscription, clinicID)
	}
	if err != nil {
		return nil, err
	}

	previous := sub.PlanTier
	sub.PlanTier = raw
	if err := s.repo.SaveSubscription(ctx, sub); err != nil {
		return nil, err
	}
	log.Infof("[Billing] Clinic %d plan changed by admin: %s -> %s", clinicID, previous, raw)
	return sub, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		ClinicID:        in.ClinicID,
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(ctx, event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(ctx, webhookEventID, errMsg)
}
