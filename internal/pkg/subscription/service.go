package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"

	"github.com/dentaqr/dashboard/app/models"
)

// SubscriptionStore loads the billing record of a clinic. A missing record is
// reported as (nil, nil); errors are reserved for failed fetches.
type SubscriptionStore interface {
	GetByClinic(ctx context.Context, clinicID uint) (*models.Subscription, error)
}

// ChannelStore counts the QR code channels of a clinic, hidden ones included.
type ChannelStore interface {
	CountByClinic(ctx context.Context, clinicID uint) (int64, error)
}

// SimpleStatus is the reduced view kept for legacy callers.
type SimpleStatus struct {
	IsActive      bool    `json:"is_active"`
	Status        string  `json:"status"`
	TrialDaysLeft *int    `json:"trial_days_left"`
	Message       *string `json:"message"`
}

// statusSuspended replaces grace_period in the simple view only.
const statusSuspended = "suspended"

// QRCodeEligibility answers whether one more QR code may be created.
type QRCodeEligibility struct {
	CanCreate bool    `json:"can_create"`
	Remaining *int    `json:"remaining"`
	Message   *string `json:"message"`
}

// DiagnosisEligibility answers whether a custom diagnosis may be authored.
type DiagnosisEligibility struct {
	Allowed bool    `json:"allowed"`
	Message *string `json:"message"`
}

// Service is the facade used by handlers. Every call re-reads the record and
// recomputes the state; nothing derived is cached between calls.
type Service struct {
	subs     SubscriptionStore
	channels ChannelStore
	resolver *Resolver
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(subs SubscriptionStore, channels ChannelStore, cfg Config, opts ...Option) *Service {
	s := &Service{
		subs:     subs,
		channels: channels,
		resolver: NewResolver(cfg),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) fetchRecord(ctx context.Context, clinicID uint) (*models.Subscription, error) {
	rec, err := s.subs.GetByClinic(ctx, clinicID)
	if err != nil {
		return nil, errors.Join(ErrFetchSubscription, fmt.Errorf("clinic %d: %w", clinicID, err))
	}
	return rec, nil
}

// GetSubscriptionState fetches the record and the channel count concurrently
// and returns the full state.
func (s *Service) GetSubscriptionState(ctx context.Context, clinicID uint) (State, error) {
	var (
		rec   *models.Subscription
		count int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rec, err = s.fetchRecord(gctx, clinicID)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.channels.CountByClinic(gctx, clinicID)
		if err != nil {
			return errors.Join(ErrCountChannels, fmt.Errorf("clinic %d: %w", clinicID, err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return State{}, err
	}

	st := s.resolver.Evaluate(rec, int(count), s.now())
	log.Debugf("[Subscription] Clinic %d resolved to %s by rule %s", clinicID, st.Status, st.outcome.Rule)
	return st, nil
}

// CanTrackVisitorSession is the high-frequency gate for public page views. It
// never runs the channel count query.
func (s *Service) CanTrackVisitorSession(ctx context.Context, clinicID uint) (bool, error) {
	rec, err := s.fetchRecord(ctx, clinicID)
	if err != nil {
		return false, err
	}
	return s.resolver.TrackingAllowed(rec, s.now()), nil
}

// CheckSubscriptionSimple returns the reduced legacy view.
func (s *Service) CheckSubscriptionSimple(ctx context.Context, clinicID uint) (SimpleStatus, error) {
	st, err := s.GetSubscriptionState(ctx, clinicID)
	if err != nil {
		return SimpleStatus{}, err
	}
	status := string(st.Status)
	if st.Status == StatusGracePeriod {
		status = statusSuspended
	}
	return SimpleStatus{
		IsActive:      st.IsActive,
		Status:        status,
		TrialDaysLeft: st.TrialDaysLeft,
		Message:       st.Message,
	}, nil
}

// CanCreateQRCode checks lifecycle and quota before a channel is written.
func (s *Service) CanCreateQRCode(ctx context.Context, clinicID uint) (QRCodeEligibility, error) {
	st, err := s.GetSubscriptionState(ctx, clinicID)
	if err != nil {
		return QRCodeEligibility{}, err
	}
	res := QRCodeEligibility{CanCreate: st.CanCreateQRCode, Remaining: st.RemainingQRCodes}
	switch {
	case st.CanCreateQRCode:
	case entitlementFor(st.Status).resourceBearing:
		res.Message = quotaExhaustedAlert(Quota{EffectiveTier: st.EffectiveTier, QRCodeLimit: st.QRCodeLimit}).Message
	default:
		res.Message = st.Message
	}
	return res, nil
}

// CanCreateCustomDiagnosis checks lifecycle and plan capability. Only the
// record is needed, so no count query runs.
func (s *Service) CanCreateCustomDiagnosis(ctx context.Context, clinicID uint) (DiagnosisEligibility, error) {
	rec, err := s.fetchRecord(ctx, clinicID)
	if err != nil {
		return DiagnosisEligibility{}, err
	}
	now := s.now()
	out := s.resolver.Resolve(rec, now)
	tier := s.resolver.effectiveTier(rec, out)
	q := EvaluateQuota(out, tier, 0)
	if q.CanCreateCustomDiagnosis {
		return DiagnosisEligibility{Allowed: true}, nil
	}
	if entitlementFor(out.Status).resourceBearing {
		msg := fmt.Sprintf("Custom diagnoses are not included in the %s plan. Upgrade to %s or higher to author your own.", Lookup(tier).DisplayName, Lookup(TierStandard).DisplayName)
		return DiagnosisEligibility{Message: &msg}, nil
	}
	return DiagnosisEligibility{Message: BuildAlert(out, q).Message}, nil
}
