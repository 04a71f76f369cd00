package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitorSession is one recorded scan of a channel by a patient.
type VisitorSession struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UUID      string    `gorm:"type:char(36);uniqueIndex;not null" json:"session_id"`
	ClinicID  uint      `gorm:"not null;index" json:"clinic_id"`
	ChannelID uint      `gorm:"not null;index" json:"channel_id"`
	UserAgent string    `gorm:"type:varchar(255);default:''" json:"-"`
	IPv4      string    `gorm:"type:varchar(15);default:''" json:"-"`
	IPv6      string    `gorm:"type:varchar(45);default:''" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (vs *VisitorSession) BeforeCreate(tx *gorm.DB) error {
	if vs.UUID == "" {
		vs.UUID = uuid.New().String()
	}
	return nil
}
