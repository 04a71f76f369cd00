package subscription

// Quota is the creation decision for QR codes and custom diagnoses.
type Quota struct {
	EffectiveTier            Tier
	QRCodeLimit              *int // nil means unlimited
	CanCreateQRCode          bool
	RemainingQRCodes         *int // nil means unlimited
	CanCreateCustomDiagnosis bool
}

// EvaluateQuota combines a lifecycle outcome with the effective tier and a fresh
// QR code count. Entitlement loss always overrides quota headroom.
func EvaluateQuota(out Outcome, tier Tier, qrCodeCount int) Quota {
	plan := Lookup(tier)
	q := Quota{EffectiveTier: plan.Tier}
	if !plan.IsUnlimited() {
		limit := plan.QRCodeLimit
		q.QRCodeLimit = &limit
	}

	if !entitlementFor(out.Status).resourceBearing {
		zero := 0
		q.RemainingQRCodes = &zero
		return q
	}

	q.CanCreateQRCode, q.RemainingQRCodes = QuotaCheck(plan.Tier, qrCodeCount)
	q.CanCreateCustomDiagnosis = SupportsCustomDiagnosis(plan.Tier)
	return q
}
