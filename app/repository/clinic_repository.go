package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
)

// clinicRepository implements the ClinicRepository interface
type clinicRepository struct {
	db *gorm.DB
}

// NewClinicRepository creates a new clinic repository instance
func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) CreateWithSubscription(ctx context.Context, clinic *models.Clinic, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(clinic).Error; err != nil {
			return err
		}
		sub.ClinicID = clinic.ID
		return tx.Create(sub).Error
	})
}

// GetByID retrieves a clinic by its ID
func (r *clinicRepository) GetByID(ctx context.Context, id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, err
	}
	return &clinic, nil
}

// SlugExists checks whether a slug is taken, soft-deleted clinics included
func (r *clinicRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.Clinic{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
