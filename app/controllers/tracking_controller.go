package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/shortener"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

const maxUserAgentLength = 255

// TrackingController records visitor sessions when a patient opens a channel.
// It runs on every public page load, so it only consults the fast gate.
type TrackingController struct {
	svc      *subscription.Service
	channels repository.ChannelRepository
	sessions repository.VisitorSessionRepository
}

func NewTrackingController(svc *subscription.Service, repos *repository.Repositories) *TrackingController {
	return &TrackingController{svc: svc, channels: repos.Channel, sessions: repos.VisitorSession}
}

func (tc *TrackingController) HandleTrack(c *fiber.Ctx) error {
	code := c.Params("code")
	if !shortener.IsSlug(code, models.ChannelCodeLength) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
	}
	ch, err := tc.channels.GetByCode(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
		}
		return internalError(c, "Tracking", "Channel lookup failed", err)
	}

	allowed, err := tc.svc.CanTrackVisitorSession(c.UserContext(), ch.ClinicID)
	if err != nil {
		return internalError(c, "Tracking", "Subscription state unavailable", err)
	}
	if !allowed {
		log.Debugf("[Tracking] Clinic %d not trackable, skipping channel %d", ch.ClinicID, ch.ID)
		return c.JSON(fiber.Map{"tracked": false, "diagnosis_id": ch.DiagnosisID})
	}

	ipv4, ipv6 := GetClientIP(c)
	ua := c.Get(fiber.HeaderUserAgent)
	if len(ua) > maxUserAgentLength {
		ua = ua[:maxUserAgentLength]
	}
	vs := models.VisitorSession{
		ClinicID:  ch.ClinicID,
		ChannelID: ch.ID,
		UserAgent: ua,
		IPv4:      ipv4,
		IPv6:      ipv6,
	}
	if err := tc.sessions.Create(c.UserContext(), &vs); err != nil {
		return internalError(c, "Tracking", "Failed to record visit", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"tracked":      true,
		"session_id":   vs.UUID,
		"diagnosis_id": ch.DiagnosisID,
	})
}
