package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
)

type diagnosisRepository struct {
	db *gorm.DB
}

// NewDiagnosisRepository creates a new diagnosis repository instance
func NewDiagnosisRepository(db *gorm.DB) DiagnosisRepository {
	return &diagnosisRepository{db: db}
}

func (r *diagnosisRepository) Create(ctx context.Context, diagnosis *models.Diagnosis) error {
	return r.db.WithContext(ctx).Create(diagnosis).Error
}

func (r *diagnosisRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.Diagnosis, error) {
	var d models.Diagnosis
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *diagnosisRepository) ListByClinic(ctx context.Context, clinicID uint) ([]models.Diagnosis, error) {
	var list []models.Diagnosis
	err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Order("created_at DESC").Find(&list).Error
	return list, err
}
