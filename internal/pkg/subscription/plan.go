package subscription

import (
	"sort"
	"strings"
)

type Tier string

const (
	TierStarter  Tier = "starter"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	// TierFree is assigned by administrators only and bypasses all temporal checks.
	TierFree Tier = "free"
)

// Unlimited marks a plan without a QR code cap.
const Unlimited = -1

// DefaultTier is used for unknown or corrupt tier identifiers. It must never be an unlimited tier.
const DefaultTier = TierStarter

// Plan is a named bundle of price, quota and capability flags.
type Plan struct {
	Tier                  Tier   `json:"tier"`
	DisplayName           string `json:"display_name"`
	MonthlyPrice          int    `json:"monthly_price"` // JPY
	QRCodeLimit           int    `json:"qr_code_limit"`
	AllowsCustomDiagnosis bool   `json:"allows_custom_diagnosis"`
	AdminOnly             bool   `json:"-"`
}

// IsUnlimited reports whether the plan has no QR code cap.
func (p Plan) IsUnlimited() bool {
	return p.QRCodeLimit == Unlimited
}

var catalog = map[Tier]Plan{
	TierStarter: {
		Tier:         TierStarter,
		DisplayName:  "Starter",
		MonthlyPrice: 2980,
		QRCodeLimit:  2,
	},
	TierStandard: {
		Tier:                  TierStandard,
		DisplayName:           "Standard",
		MonthlyPrice:          4980,
		QRCodeLimit:           5,
		AllowsCustomDiagnosis: true,
	},
	TierPremium: {
		Tier:                  TierPremium,
		DisplayName:           "Premium",
		MonthlyPrice:          9800,
		QRCodeLimit:           Unlimited,
		AllowsCustomDiagnosis: true,
	},
	TierFree: {
		Tier:                  TierFree,
		DisplayName:           "Free",
		QRCodeLimit:           Unlimited,
		AllowsCustomDiagnosis: true,
		AdminOnly:             true,
	},
}

// NormalizeTier maps a stored tier string to a known tier, falling back to DefaultTier.
func NormalizeTier(raw string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := catalog[t]; ok {
		return t
	}
	return DefaultTier
}

// IsKnownTier reports whether raw names a catalog tier.
func IsKnownTier(raw string) bool {
	_, ok := catalog[Tier(strings.ToLower(strings.TrimSpace(raw)))]
	return ok
}

// Lookup returns the plan for a tier or the default plan for unknown tiers.
func Lookup(tier Tier) Plan {
	if p, ok := catalog[tier]; ok {
		return p
	}
	return catalog[DefaultTier]
}

// QuotaCheck reports whether one more QR code fits into the tier's quota.
// remaining is nil when the tier is unlimited.
func QuotaCheck(tier Tier, currentCount int) (allowed bool, remaining *int) {
	plan := Lookup(tier)
	if plan.IsUnlimited() {
		return true, nil
	}
	left := max(0, plan.QRCodeLimit-currentCount)
	return currentCount < plan.QRCodeLimit, &left
}

// SupportsCustomDiagnosis is the static per-tier authoring capability.
func SupportsCustomDiagnosis(tier Tier) bool {
	return Lookup(tier).AllowsCustomDiagnosis
}

// PublicPlans lists plans offered for self-service, cheapest first.
func PublicPlans() []Plan {
	plans := make([]Plan, 0, len(catalog))
	for _, p := range catalog {
		if p.AdminOnly {
			continue
		}
		plans = append(plans, p)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].MonthlyPrice < plans[j].MonthlyPrice })
	return plans
}
