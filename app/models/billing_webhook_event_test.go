package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBillingWebhookEventHandled(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	assert.False(t, (&BillingWebhookEvent{}).Handled())
	assert.False(t, (&BillingWebhookEvent{ProcessedAt: &now, ProcessingError: "sync failed"}).Handled())
	assert.True(t, (&BillingWebhookEvent{ProcessedAt: &now}).Handled())
}
