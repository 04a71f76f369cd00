package subscription

import (
	"strings"
	"time"
)

// Status is the resolved lifecycle state. It is a superset of the stored values:
// StatusGracePeriod and StatusExpired only ever exist as projections of time.
type Status string

const (
	StatusTrial       Status = "trial"
	StatusActive      Status = "active"
	StatusPastDue     Status = "past_due"
	StatusCanceled    Status = "canceled"
	StatusGracePeriod Status = "grace_period"
	StatusExpired     Status = "expired"
)

// Reason annotates outcomes that need distinct messaging.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNoRecord           Reason = "no_record"
	ReasonFreeTier           Reason = "free_tier"
	ReasonUnrecognizedStatus Reason = "unrecognized_status"
)

// Outcome is the result of the temporal resolution, independent of resource counts.
type Outcome struct {
	Status              Status
	Reason              Reason
	Rule                string // name of the matching decision-table row
	TrialBased          bool   // quota is taken from the trial-equivalent tier
	TrialDaysLeft       *int
	GracePeriodDaysLeft *int
	EffectivePeriodEnd  *time.Time
}

type entitlement struct {
	serviceUsable   bool
	resourceBearing bool
	trackable       bool
}

// Unlisted statuses get the zero entitlement, which denies everything.
var entitlements = map[Status]entitlement{
	StatusTrial:       {serviceUsable: true, resourceBearing: true, trackable: true},
	StatusActive:      {serviceUsable: true, resourceBearing: true, trackable: true},
	StatusCanceled:    {serviceUsable: true, resourceBearing: true},
	StatusGracePeriod: {serviceUsable: true},
	StatusPastDue:     {serviceUsable: true},
	StatusExpired:     {},
}

func entitlementFor(s Status) entitlement {
	return entitlements[s]
}

// CanTrack is the per-status tracking table shared by the full state and the fast gate.
func CanTrack(s Status) bool {
	return entitlementFor(s).trackable
}

func normalizeStored(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
