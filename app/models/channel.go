package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/internal/pkg/shortener"
)

// ChannelCodeLength keeps printed QR codes at a low module density.
const ChannelCodeLength = 10

// Channel is a trackable QR code counted against the clinic's plan quota.
// Hidden channels still occupy a quota slot; only a hard delete frees it.
type Channel struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClinicID    uint      `gorm:"not null;index" json:"clinic_id"`
	Code        string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,min=1,max=100"`
	DiagnosisID *uint     `gorm:"index" json:"diagnosis_id,omitempty"`
	IsHidden    bool      `gorm:"default:false" json:"is_hidden"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ch *Channel) Validate() error {
	v := validator.New()
	return v.Struct(ch)
}

// BeforeCreate assigns the public code printed into the QR image.
func (ch *Channel) BeforeCreate(tx *gorm.DB) error {
	if ch.Code != "" {
		return nil
	}
	code, err := shortener.GenerateSecureSlug(ChannelCodeLength)
	if err != nil {
		return err
	}
	ch.Code = code
	return nil
}
