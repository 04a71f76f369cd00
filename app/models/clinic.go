package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Clinic is a tenant account owning a subscription, QR code channels and diagnosis content.
type Clinic struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Slug      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug" validate:"required,min=2,max=100,lowercase"`
	Email     string         `gorm:"type:varchar(200);not null" json:"email" validate:"required,email,max=200"`
	Phone     string         `gorm:"type:varchar(30);default:''" json:"phone" validate:"max=30"`
	Address   string         `gorm:"type:varchar(255);default:''" json:"address" validate:"max=255"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Clinic) Validate() error {
	v := validator.New()
	return v.Struct(c)
}
