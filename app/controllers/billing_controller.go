package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dentaqr/dashboard/internal/pkg/billing"
)

// BillingController receives provider-neutral billing webhooks.
type BillingController struct {
	svc    *billing.Service
	secret string
}

func NewBillingController(svc *billing.Service, webhookSecret string) *BillingController {
	return &BillingController{svc: svc, secret: webhookSecret}
}

func (bc *BillingController) HandleWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := c.Get(billing.SignatureHeader)

	// Unsigned deliveries are never stored, so they cannot claim an event ID.
	if !billing.VerifyWebhookSignature(rawBody, signature, bc.secret) {
		log.Warnf("[Billing] Rejected webhook with invalid signature from %s", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
	defer cancel()

	ev, parseErr := billing.ParseWebhookEvent(rawBody)
	in := billing.WebhookEventInput{
		Provider:       "billing",
		PayloadJSON:    string(rawBody),
		SignatureValid: true,
	}
	if parseErr == nil {
		in.Provider = ev.Provider
		in.ProviderEventID = ev.ID
		in.EventType = ev.Type
		if ev.Data.ClinicID != 0 {
			clinicID := ev.Data.ClinicID
			in.ClinicID = &clinicID
		}
	}

	created, stored, err := bc.svc.RecordWebhookEvent(ctx, in)
	if err != nil {
		log.Errorf("[Billing] Failed to persist webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		if stored.Handled() {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
		}
		log.Infof("[Billing] Reprocessing webhook %d (%s), previous attempt: %q", stored.ID, stored.ProviderEventID, stored.ProcessingError)
	}
	if parseErr != nil {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, parseErr)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}
	if !ev.IsHandled() {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, nil)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	normalized, err := ev.Normalize()
	if err != nil {
		_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	_, syncErr := bc.svc.SyncSubscription(ctx, normalized)
	_ = bc.svc.MarkWebhookProcessed(ctx, stored.ID, syncErr)
	if syncErr != nil {
		if errors.Is(syncErr, billing.ErrInvalidPlan) || errors.Is(syncErr, billing.ErrInvalidStatus) {
			log.Warnf("[Billing] Webhook %d rejected: %v", stored.ID, syncErr)
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid_subscription_state"})
		}
		log.Errorf("[Billing] Webhook %d sync failed: %v", stored.ID, syncErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "subscription_sync_failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
