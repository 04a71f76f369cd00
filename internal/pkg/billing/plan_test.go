package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentaqr/dashboard/app/models"
)

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "starter", want: "starter"},
		{in: "Standard", want: "standard"},
		{in: " PREMIUM ", want: "premium"},
	}

	for _, tt := range tests {
		got, err := normalizePlan(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := normalizePlan("enterprise")
	assert.ErrorIs(t, err, ErrInvalidPlan)
	_, err = normalizePlan("free")
	assert.Error(t, err, "free must not be reachable through billing")
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "trialing", want: models.SubscriptionStatusTrial},
		{in: "active", want: models.SubscriptionStatusActive},
		{in: "paid", want: models.SubscriptionStatusActive},
		{in: "unpaid", want: models.SubscriptionStatusPastDue},
		{in: "PAST_DUE", want: models.SubscriptionStatusPastDue},
		{in: "cancelled", want: models.SubscriptionStatusCanceled},
	}
	for _, tt := range tests {
		got, err := normalizeStatus(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, derived := range []string{"grace_period", "expired", "paused", ""} {
		_, err := normalizeStatus(derived)
		assert.ErrorIs(t, err, ErrInvalidStatus, derived)
	}
}
