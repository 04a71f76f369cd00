package billing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

var fixedNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

type memoryRepository struct {
	mu      sync.Mutex
	subs    map[uint]models.Subscription
	events  map[string]models.BillingWebhookEvent
	nextID  uint
	saveErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		subs:   make(map[uint]models.Subscription),
		events: make(map[string]models.BillingWebhookEvent),
	}
}

func (m *memoryRepository) GetSubscriptionByClinic(ctx context.Context, clinicID uint) (*models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subs[clinicID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sub, nil
}

func (m *memoryRepository) SaveSubscription(ctx context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if sub.ID == 0 {
		m.nextID++
		sub.ID = m.nextID
	}
	m.subs[sub.ClinicID] = *sub
	return nil
}

func (m *memoryRepository) CreateWebhookEventIfNotExists(ctx context.Context, event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := m.events[key]; ok {
		return false, &stored, nil
	}
	m.nextID++
	event.ID = m.nextID
	m.events[key] = *event
	stored := *event
	return true, &stored, nil
}

func (m *memoryRepository) MarkWebhookProcessed(ctx context.Context, id uint, processingError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, ev := range m.events {
		if ev.ID == id {
			now := fixedNow
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
			m.events[k] = ev
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestService(repo Repository) *Service {
	return NewService(repo, subscription.DefaultConfig(), WithClock(func() time.Time { return fixedNow }))
}

func ptr(t time.Time) *time.Time { return &t }

func TestNewTrial(t *testing.T) {
	sub := newTestService(newMemoryRepository()).NewTrial()

	assert.Equal(t, models.SubscriptionStatusTrial, sub.Status)
	assert.Equal(t, "starter", sub.PlanTier)
	require.NotNil(t, sub.TrialEnd)
	assert.Equal(t, fixedNow.AddDate(0, 0, 14), *sub.TrialEnd)
	assert.Nil(t, sub.CurrentPeriodEnd)
	assert.Nil(t, sub.GracePeriodEnd)
}

func TestNewTrialHonoursConfig(t *testing.T) {
	cfg := subscription.DefaultConfig()
	cfg.TrialDurationDays = 30
	cfg.TrialTier = "free"
	svc := NewService(newMemoryRepository(), cfg, WithClock(func() time.Time { return fixedNow }))

	sub := svc.NewTrial()
	assert.Equal(t, "starter", sub.PlanTier, "free must never become the trial tier")
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), *sub.TrialEnd)
}

func TestSyncSubscriptionCreatesMissingRecord(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)

	sub, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{
		ClinicID:               7,
		Provider:               "Stripe",
		ProviderSubscriptionID: "sub_1",
		PlanTier:               "standard",
		Status:                 "active",
		CurrentPeriodStart:     ptr(fixedNow),
		CurrentPeriodEnd:       ptr(fixedNow.AddDate(0, 1, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), sub.ClinicID)
	assert.Equal(t, "stripe", sub.Provider)
	assert.Equal(t, "standard", sub.PlanTier)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)

	r := subscription.NewResolver(subscription.DefaultConfig())
	assert.Equal(t, subscription.StatusActive, r.Resolve(sub, fixedNow).Status)
}

func TestSyncSubscriptionActivationClearsGraceAndCancel(t *testing.T) {
	repo := newMemoryRepository()
	require.NoError(t, repo.SaveSubscription(context.Background(), &models.Subscription{
		ClinicID:       1,
		Status:         models.SubscriptionStatusCanceled,
		PlanTier:       "standard",
		GracePeriodEnd: ptr(fixedNow.AddDate(0, 0, 1)),
		CanceledAt:     ptr(fixedNow.AddDate(0, 0, -3)),
	}))

	sub, err := newTestService(repo).SyncSubscription(context.Background(), NormalizedSubscription{
		ClinicID:         1,
		Status:           "paid",
		CurrentPeriodEnd: ptr(fixedNow.AddDate(0, 1, 0)),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	assert.Nil(t, sub.GracePeriodEnd)
	assert.Nil(t, sub.CanceledAt)
	assert.Equal(t, "standard", sub.PlanTier, "an empty tier keeps the stored one")
}

func TestSyncSubscriptionCancelSetsCanceledAt(t *testing.T) {
	repo := newMemoryRepository()
	periodEnd := fixedNow.AddDate(0, 0, 10)
	require.NoError(t, repo.SaveSubscription(context.Background(), &models.Subscription{
		ClinicID: 1, Status: models.SubscriptionStatusActive, PlanTier: "premium", CurrentPeriodEnd: &periodEnd,
	}))

	sub, err := newTestService(repo).SyncSubscription(context.Background(), NormalizedSubscription{ClinicID: 1, Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCanceled, sub.Status)
	require.NotNil(t, sub.CanceledAt)
	assert.Equal(t, fixedNow, *sub.CanceledAt)
	assert.Equal(t, periodEnd, *sub.CurrentPeriodEnd)

	r := subscription.NewResolver(subscription.DefaultConfig())
	assert.Equal(t, subscription.StatusCanceled, r.Resolve(sub, fixedNow).Status)
}

func TestSyncSubscriptionRejectsDerivedStatus(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)

	for _, status := range []string{"grace_period", "expired"} {
		_, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{ClinicID: 1, Status: status})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	}
	assert.Empty(t, repo.subs)
}

func TestSyncSubscriptionRejectsFreeAndUnknownTiers(t *testing.T) {
	svc := newTestService(newMemoryRepository())

	for _, tier := range []string{"free", "enterprise"} {
		_, err := svc.SyncSubscription(context.Background(), NormalizedSubscription{ClinicID: 1, Status: "active", PlanTier: tier})
		assert.ErrorIs(t, err, ErrInvalidPlan, tier)
	}
}

func TestSyncSubscriptionKeepsAdminFreeTier(t *testing.T) {
	repo := newMemoryRepository()
	require.NoError(t, repo.SaveSubscription(context.Background(), &models.Subscription{
		ClinicID: 3, Status: models.SubscriptionStatusActive, PlanTier: "free",
	}))

	sub, err := newTestService(repo).SyncSubscription(context.Background(), NormalizedSubscription{
		ClinicID: 3, Status: "past_due", PlanTier: "starter",
	})
	require.NoError(t, err)
	assert.Equal(t, "free", sub.PlanTier)
	assert.Equal(t, models.SubscriptionStatusPastDue, sub.Status)
}

func TestSyncSubscriptionSurfacesSaveErrors(t *testing.T) {
	repo := newMemoryRepository()
	repo.saveErr = errors.New("disk full")

	_, err := newTestService(repo).SyncSubscription(context.Background(), NormalizedSubscription{ClinicID: 1, Status: "active"})
	assert.EqualError(t, err, "disk full")
}

func TestChangePlan(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.ChangePlan(ctx, 1, "premium")
	assert.ErrorIs(t, err, ErrNoSubscription)

	require.NoError(t, repo.SaveSubscription(ctx, &models.Subscription{ClinicID: 1, Status: models.SubscriptionStatusTrial, PlanTier: "starter"}))

	_, err = svc.ChangePlan(ctx, 1, "gold")
	assert.ErrorIs(t, err, ErrInvalidPlan)

	sub, err := svc.ChangePlan(ctx, 1, " FREE ")
	require.NoError(t, err)
	assert.Equal(t, "free", sub.PlanTier)
	assert.Equal(t, models.SubscriptionStatusTrial, sub.Status, "plan changes leave the lifecycle alone")
}

func TestRecordWebhookEventIsIdempotent(t *testing.T) {
	repo := newMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	in := WebhookEventInput{Provider: "Stripe", ProviderEventID: "evt_1", EventType: "invoice.paid", PayloadJSON: `{}`, SignatureValid: true}

	created, stored, err := svc.RecordWebhookEvent(ctx, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "stripe", stored.Provider)

	created, again, err := svc.RecordWebhookEvent(ctx, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.ID, again.ID)

	require.NoError(t, svc.MarkWebhookProcessed(ctx, stored.ID, errors.New("boom")))
	assert.Equal(t, "boom", repo.events["stripe|evt_1"].ProcessingError)
	assert.Error(t, svc.MarkWebhookProcessed(ctx, 0, nil))
}

func TestRecordWebhookEventHashesMissingIDs(t *testing.T) {
	svc := newTestService(newMemoryRepository())

	_, a, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{Provider: "billing", PayloadJSON: `{"a":1}`})
	require.NoError(t, err)
	created, b, err := svc.RecordWebhookEvent(context.Background(), WebhookEventInput{Provider: "billing", PayloadJSON: `{"a":1}`})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ProviderEventID, b.ProviderEventID)
	assert.Contains(t, a.ProviderEventID, "hash:")

	_, _, err = svc.RecordWebhookEvent(context.Background(), WebhookEventInput{PayloadJSON: `{}`})
	assert.Error(t, err)
}
