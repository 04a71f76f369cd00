package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
)

type visitorSessionRepository struct {
	db *gorm.DB
}

// NewVisitorSessionRepository creates a new visitor session repository instance
func NewVisitorSessionRepository(db *gorm.DB) VisitorSessionRepository {
	return &visitorSessionRepository{db: db}
}

func (r *visitorSessionRepository) Create(ctx context.Context, session *models.VisitorSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *visitorSessionRepository) CountByChannel(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VisitorSession{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}
