package subscription

import (
	"time"

	"github.com/dentaqr/dashboard/app/models"
)

// State is the derived, never persisted entitlement snapshot of a clinic.
type State struct {
	Status                   Status     `json:"status"`
	PlanTier                 Tier       `json:"plan_tier"`
	EffectiveTier            Tier       `json:"effective_tier"`
	IsActive                 bool       `json:"is_active"`
	CanCreateQRCode          bool       `json:"can_create_qr_code"`
	CanTrackVisitorSession   bool       `json:"can_track_visitor_session"`
	CanCreateCustomDiagnosis bool       `json:"can_create_custom_diagnosis"`
	TrialDaysLeft            *int       `json:"trial_days_left"`
	GracePeriodDaysLeft      *int       `json:"grace_period_days_left"`
	CurrentPeriodEnd         *time.Time `json:"current_period_end"`
	QRCodeLimit              *int       `json:"qr_code_limit"`
	QRCodeCount              int        `json:"qr_code_count"`
	RemainingQRCodes         *int       `json:"remaining_qr_codes"`
	Message                  *string    `json:"message"`
	AlertSeverity            Severity   `json:"alert_severity"`

	outcome Outcome
}

// Evaluate builds the full state from already fetched inputs. It is pure:
// identical inputs always produce identical output.
func (r *Resolver) Evaluate(rec *models.Subscription, qrCodeCount int, now time.Time) State {
	out := r.Resolve(rec, now)
	q := EvaluateQuota(out, r.effectiveTier(rec, out), qrCodeCount)
	alert := BuildAlert(out, q)

	st := State{
		Status:                   out.Status,
		PlanTier:                 DefaultTier,
		EffectiveTier:            q.EffectiveTier,
		IsActive:                 entitlementFor(out.Status).serviceUsable,
		CanCreateQRCode:          q.CanCreateQRCode,
		CanTrackVisitorSession:   CanTrack(out.Status),
		CanCreateCustomDiagnosis: q.CanCreateCustomDiagnosis,
		TrialDaysLeft:            out.TrialDaysLeft,
		GracePeriodDaysLeft:      out.GracePeriodDaysLeft,
		QRCodeLimit:              q.QRCodeLimit,
		QRCodeCount:              qrCodeCount,
		RemainingQRCodes:         q.RemainingQRCodes,
		Message:                  alert.Message,
		AlertSeverity:            alert.Severity,
		outcome:                  out,
	}
	if rec != nil {
		st.PlanTier = NormalizeTier(rec.PlanTier)
		st.CurrentPeriodEnd = rec.CurrentPeriodEnd
	}
	return st
}
