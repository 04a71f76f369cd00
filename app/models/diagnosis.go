package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Diagnosis is a clinic-authored quiz shown to visitors after scanning a channel.
type Diagnosis struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	ClinicID      uint           `gorm:"not null;index" json:"clinic_id"`
	Title         string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,min=1,max=200"`
	QuestionsJSON string         `gorm:"type:longtext;not null" json:"questions_json" validate:"required,json"`
	IsPublished   bool           `gorm:"default:false" json:"is_published"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Diagnosis) Validate() error {
	v := validator.New()
	return v.Struct(d)
}
