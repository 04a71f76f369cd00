package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
)

// channelRepository implements the ChannelRepository interface
type channelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new channel repository instance
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(ctx context.Context, channel *models.Channel) error {
	return r.db.WithContext(ctx).Create(channel).Error
}

// GetByID retrieves a channel owned by the given clinic
func (r *channelRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&channel, id).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

// GetByCode resolves the public code printed into a QR image
func (r *channelRepository) GetByCode(ctx context.Context, code string) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&channel).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) ListByClinic(ctx context.Context, clinicID uint, includeHidden bool) ([]models.Channel, error) {
	var channels []models.Channel
	q := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID)
	if !includeHidden {
		q = q.Where("is_hidden = ?", false)
	}
	err := q.Order("created_at ASC").Find(&channels).Error
	return channels, err
}

func (r *channelRepository) CountByClinic(ctx context.Context, clinicID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Channel{}).Where("clinic_id = ?", clinicID).Count(&count).Error
	return count, err
}

func (r *channelRepository) SetHidden(ctx context.Context, clinicID, id uint, hidden bool) error {
	tx := r.db.WithContext(ctx).Model(&models.Channel{}).
		Where("id = ? AND clinic_id = ?", id, clinicID).
		Update("is_hidden", hidden)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *channelRepository) Delete(ctx context.Context, clinicID, id uint) error {
	tx := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Delete(&models.Channel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
