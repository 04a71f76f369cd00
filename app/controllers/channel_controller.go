package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
	"github.com/dentaqr/dashboard/app/repository"
	"github.com/dentaqr/dashboard/internal/pkg/cliniccontext"
	"github.com/dentaqr/dashboard/internal/pkg/qrcode"
	"github.com/dentaqr/dashboard/internal/pkg/shortener"
	"github.com/dentaqr/dashboard/internal/pkg/subscription"
)

// ChannelController manages QR code channels. Creation is gated by the
// clinic's lifecycle and plan quota.
type ChannelController struct {
	svc           *subscription.Service
	channels      repository.ChannelRepository
	diagnoses     repository.DiagnosisRepository
	publicBaseURL string
}

func NewChannelController(svc *subscription.Service, repos *repository.Repositories, publicBaseURL string) *ChannelController {
	return &ChannelController{
		svc:           svc,
		channels:      repos.Channel,
		diagnoses:     repos.Diagnosis,
		publicBaseURL: publicBaseURL,
	}
}

type createChannelRequest struct {
	Name        string `json:"name"`
	DiagnosisID *uint  `json:"diagnosis_id"`
}

type setHiddenRequest struct {
	Hidden *bool `json:"hidden"`
}

type channelResponse struct {
	models.Channel
	TrackingURL string `json:"tracking_url"`
}

func (cc *ChannelController) toResponse(ch models.Channel) channelResponse {
	return channelResponse{Channel: ch, TrackingURL: qrcode.TrackingURL(cc.publicBaseURL, ch.Code)}
}

func channelIDParam(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("channelID"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// HandleList lists the clinic's channels; hidden ones only with ?include_hidden=true.
func (cc *ChannelController) HandleList(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	channels, err := cc.channels.ListByClinic(c.UserContext(), clinicID, c.QueryBool("include_hidden"))
	if err != nil {
		return internalError(c, "Channel", "Failed to list channels", err)
	}
	out := make([]channelResponse, 0, len(channels))
	for _, ch := range channels {
		out = append(out, cc.toResponse(ch))
	}
	return c.JSON(fiber.Map{"channels": out})
}

func (cc *ChannelController) HandleCreate(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)

	var req createChannelRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	channel := models.Channel{ClinicID: clinicID, Name: req.Name, DiagnosisID: req.DiagnosisID}
	if err := channel.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	eligibility, err := cc.svc.CanCreateQRCode(c.UserContext(), clinicID)
	if err != nil {
		return internalError(c, "Channel", "Subscription state unavailable", err)
	}
	if !eligibility.CanCreate {
		msg := "QR code creation is not available"
		if eligibility.Message != nil {
			msg = *eligibility.Message
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":     "qr_code_not_allowed",
			"message":   msg,
			"remaining": eligibility.Remaining,
		})
	}

	if req.DiagnosisID != nil {
		if _, err := cc.diagnoses.GetByID(c.UserContext(), clinicID, *req.DiagnosisID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return jsonError(c, fiber.StatusNotFound, "not_found", "Diagnosis not found")
			}
			return internalError(c, "Channel", "Diagnosis lookup failed", err)
		}
	}

	if err := cc.channels.Create(c.UserContext(), &channel); err != nil {
		return internalError(c, "Channel", "Failed to create channel", err)
	}
	log.Infof("[Channel] Clinic %d created channel %d (%s)", clinicID, channel.ID, channel.Code)
	return c.Status(fiber.StatusCreated).JSON(cc.toResponse(channel))
}

// HandleSetHidden hides or shows a channel. Hidden channels keep their quota slot.
func (cc *ChannelController) HandleSetHidden(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	id, ok := channelIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid channel ID")
	}
	var req setHiddenRequest
	if err := c.BodyParser(&req); err != nil || req.Hidden == nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Field 'hidden' is required")
	}

	if err := cc.channels.SetHidden(c.UserContext(), clinicID, id, *req.Hidden); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
		}
		return internalError(c, "Channel", "Failed to update channel", err)
	}
	return c.JSON(fiber.Map{"ok": true, "hidden": *req.Hidden})
}

// HandleDelete removes a channel permanently, freeing its quota slot.
func (cc *ChannelController) HandleDelete(c *fiber.Ctx) error {
	clinicID := cliniccontext.GetClinicID(c)
	id, ok := channelIDParam(c)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "Invalid channel ID")
	}
	if err := cc.channels.Delete(c.UserContext(), clinicID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
		}
		return internalError(c, "Channel", "Failed to delete channel", err)
	}
	log.Infof("[Channel] Clinic %d deleted channel %d", clinicID, id)
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleQRCodePNG renders the printable QR image of a channel.
func (cc *ChannelController) HandleQRCodePNG(c *fiber.Ctx) error {
	code := c.Params("code")
	if !shortener.IsSlug(code, models.ChannelCodeLength) {
		return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
	}
	ch, err := cc.channels.GetByCode(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "not_found", "Channel not found")
		}
		return internalError(c, "Channel", "Channel lookup failed", err)
	}

	png, err := qrcode.PNG(qrcode.TrackingURL(cc.publicBaseURL, ch.Code), c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return internalError(c, "Channel", "Failed to render QR code", err)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	c.Type("png")
	return c.Send(png)
}
