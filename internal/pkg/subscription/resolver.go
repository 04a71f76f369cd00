package subscription

import (
	"time"

	"github.com/dentaqr/dashboard/app/models"
)

const day = 24 * time.Hour

// facts are the inputs of one resolution, derived once so that the rules below
// never repeat date math.
type facts struct {
	rec       *models.Subscription
	now       time.Time
	status    string
	tier      Tier
	graceDays int
}

// within reports now <= boundary. A nil boundary is never within.
func (f facts) within(boundary *time.Time) bool {
	return boundary != nil && !f.now.After(*boundary)
}

// graceEnd prefers the stored grace end and otherwise derives it from ref.
func (f facts) graceEnd(ref *time.Time) (time.Time, bool) {
	if f.rec.GracePeriodEnd != nil {
		return *f.rec.GracePeriodEnd, true
	}
	if ref == nil {
		return time.Time{}, false
	}
	return ref.AddDate(0, 0, f.graceDays), true
}

func (f facts) withinGrace(ref *time.Time) bool {
	end, ok := f.graceEnd(ref)
	return ok && !f.now.After(end)
}

func (f facts) graceOutcome(ref *time.Time, trialBased bool) Outcome {
	end, _ := f.graceEnd(ref)
	left := daysUntil(f.now, end)
	return Outcome{
		Status:              StatusGracePeriod,
		TrialBased:          trialBased,
		GracePeriodDaysLeft: &left,
		EffectivePeriodEnd:  ref,
	}
}

type rule struct {
	name string
	when func(f facts) bool
	then func(f facts) Outcome
}

// rules is evaluated top to bottom; the first match wins. The last row always
// matches so unrecognized stored values fail closed.
var rules = []rule{
	{
		name: "no_record",
		when: func(f facts) bool { return f.rec == nil },
		then: func(f facts) Outcome { return Outcome{Status: StatusExpired, Reason: ReasonNoRecord} },
	},
	{
		name: "free_tier",
		when: func(f facts) bool { return f.tier == TierFree },
		then: func(f facts) Outcome { return Outcome{Status: StatusActive, Reason: ReasonFreeTier} },
	},
	{
		name: "trial_running",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusTrial && f.within(f.rec.TrialEnd) },
		then: func(f facts) Outcome {
			left := daysUntil(f.now, *f.rec.TrialEnd)
			return Outcome{Status: StatusTrial, TrialBased: true, TrialDaysLeft: &left, EffectivePeriodEnd: f.rec.TrialEnd}
		},
	},
	{
		name: "trial_grace",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusTrial && f.withinGrace(f.rec.TrialEnd) },
		then: func(f facts) Outcome { return f.graceOutcome(f.rec.TrialEnd, true) },
	},
	{
		name: "trial_lapsed",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusTrial },
		then: func(f facts) Outcome {
			return Outcome{Status: StatusExpired, TrialBased: true, EffectivePeriodEnd: f.rec.TrialEnd}
		},
	},
	{
		name: "active_unbounded",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusActive && f.rec.CurrentPeriodEnd == nil },
		then: func(f facts) Outcome { return Outcome{Status: StatusActive} },
	},
	{
		name: "active_in_period",
		when: func(f facts) bool {
			return f.status == models.SubscriptionStatusActive && f.within(f.rec.CurrentPeriodEnd)
		},
		then: func(f facts) Outcome { return Outcome{Status: StatusActive, EffectivePeriodEnd: f.rec.CurrentPeriodEnd} },
	},
	{
		name: "active_grace",
		when: func(f facts) bool {
			return f.status == models.SubscriptionStatusActive && f.withinGrace(f.rec.CurrentPeriodEnd)
		},
		then: func(f facts) Outcome { return f.graceOutcome(f.rec.CurrentPeriodEnd, false) },
	},
	{
		name: "active_lapsed",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusActive },
		then: func(f facts) Outcome { return Outcome{Status: StatusExpired, EffectivePeriodEnd: f.rec.CurrentPeriodEnd} },
	},
	{
		name: "canceled_in_period",
		when: func(f facts) bool {
			return f.status == models.SubscriptionStatusCanceled && f.within(f.rec.CurrentPeriodEnd)
		},
		then: func(f facts) Outcome { return Outcome{Status: StatusCanceled, EffectivePeriodEnd: f.rec.CurrentPeriodEnd} },
	},
	{
		name: "canceled_lapsed",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusCanceled },
		then: func(f facts) Outcome { return Outcome{Status: StatusExpired, EffectivePeriodEnd: f.rec.CurrentPeriodEnd} },
	},
	{
		name: "past_due",
		when: func(f facts) bool { return f.status == models.SubscriptionStatusPastDue },
		then: func(f facts) Outcome { return Outcome{Status: StatusPastDue, EffectivePeriodEnd: f.rec.CurrentPeriodEnd} },
	},
	{
		name: "unrecognized_status",
		when: func(f facts) bool { return true },
		then: func(f facts) Outcome { return Outcome{Status: StatusExpired, Reason: ReasonUnrecognizedStatus} },
	},
}

// Resolver turns a stored subscription record and a point in time into a
// lifecycle outcome, a quota decision and an alert. It holds no mutable state.
type Resolver struct {
	cfg Config
}

func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve runs the temporal decision table. It never looks at resource counts.
func (r *Resolver) Resolve(rec *models.Subscription, now time.Time) Outcome {
	f := facts{rec: rec, now: now, graceDays: r.cfg.GracePeriodDays}
	if rec != nil {
		f.status = normalizeStored(rec.Status)
		f.tier = Tier(normalizeStored(rec.PlanTier))
	}
	for _, rl := range rules {
		if rl.when(f) {
			out := rl.then(f)
			out.Rule = rl.name
			return out
		}
	}
	// unreachable: the last rule always matches
	return Outcome{Status: StatusExpired, Reason: ReasonUnrecognizedStatus}
}

// TrackingAllowed is the fast gate: the record-only projection of Resolve.
func (r *Resolver) TrackingAllowed(rec *models.Subscription, now time.Time) bool {
	return CanTrack(r.Resolve(rec, now).Status)
}

// effectiveTier is the tier whose quota applies to the outcome.
func (r *Resolver) effectiveTier(rec *models.Subscription, out Outcome) Tier {
	switch {
	case out.Reason == ReasonFreeTier:
		return TierFree
	case out.TrialBased:
		return r.cfg.TrialPlanTier()
	case rec == nil:
		return DefaultTier
	default:
		return NormalizeTier(rec.PlanTier)
	}
}

// daysUntil rounds the remaining time up to whole days and never goes below zero.
func daysUntil(now, end time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	// Sub saturates at the Duration bounds, so round up without adding to d.
	days := int(d / day)
	if d%day != 0 {
		days++
	}
	return days
}
