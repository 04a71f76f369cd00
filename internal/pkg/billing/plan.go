package billing

import (
	"fmt"
	"strings"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// normalizePlan validates a plan tier coming from a provider. Unknown tiers
// are rejected instead of defaulted, and the admin-only free tier can never be
// granted through billing.
func normalizePlan(plan string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(plan))
	if !subscription.IsKnownTier(raw) {
		return "", fmt.Errorf("%w: unknown plan tier %q", ErrInvalidPlan, plan)
	}
	if subscription.Tier(raw) == subscription.TierFree {
		return "", fmt.Errorf("%w: plan tier %q can only be assigned by an administrator", ErrInvalidPlan, plan)
	}
	return raw, nil
}

// normalizeStatus maps provider status vocabularies onto the stored statuses.
// Derived statuses (grace_period, expired) are never accepted for storage.
func normalizeStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "trial", "trialing":
		return models.SubscriptionStatusTrial, nil
	case "active", "paid":
		return models.SubscriptionStatusActive, nil
	case "past_due", "unpaid", "payment_failed":
		return models.SubscriptionStatusPastDue, nil
	case "canceled", "cancelled", "deleted":
		return models.SubscriptionStatusCanceled, nil
	default:
		return "", fmt.Errorf("%w: unsupported subscription status %q", ErrInvalidStatus, status)
	}
}
