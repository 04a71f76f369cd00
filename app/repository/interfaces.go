package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dentaqr/dashboard/app/models"
)

// ClinicRepository defines the interface for clinic (tenant) operations
type ClinicRepository interface {
	// CreateWithSubscription writes the clinic and its first subscription record
	// in one transaction. sub.ClinicID is filled in from the new clinic.
	CreateWithSubscription(ctx context.Context, clinic *models.Clinic, sub *models.Subscription) error
	GetByID(ctx context.Context, id uint) (*models.Clinic, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SubscriptionRepository reads the per-clinic subscription record.
type SubscriptionRepository interface {
	// GetByClinic returns (nil, nil) when the clinic has no record.
	GetByClinic(ctx context.Context, clinicID uint) (*models.Subscription, error)
}

// ChannelRepository defines the interface for QR code channel operations
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, clinicID, id uint) (*models.Channel, error)
	GetByCode(ctx context.Context, code string) (*models.Channel, error)
	ListByClinic(ctx context.Context, clinicID uint, includeHidden bool) ([]models.Channel, error)
	// CountByClinic counts hidden channels as well; they keep their quota slot.
	CountByClinic(ctx context.Context, clinicID uint) (int64, error)
	SetHidden(ctx context.Context, clinicID, id uint, hidden bool) error
	// Delete removes the row permanently and frees the quota slot.
	Delete(ctx context.Context, clinicID, id uint) error
}

// DiagnosisRepository defines the interface for custom diagnosis operations
type DiagnosisRepository interface {
	Create(ctx context.Context, diagnosis *models.Diagnosis) error
	GetByID(ctx context.Context, clinicID, id uint) (*models.Diagnosis, error)
	ListByClinic(ctx context.Context, clinicID uint) ([]models.Diagnosis, error)
}

// VisitorSessionRepository records channel scans
type VisitorSessionRepository interface {
	Create(ctx context.Context, session *models.VisitorSession) error
	CountByChannel(ctx context.Context, channelID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Clinic         ClinicRepository
	Subscription   SubscriptionRepository
	Channel        ChannelRepository
	Diagnosis      DiagnosisRepository
	VisitorSession VisitorSessionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Clinic:         NewClinicRepository(db),
		Subscription:   NewSubscriptionRepository(db),
		Channel:        NewChannelRepository(db),
		Diagnosis:      NewDiagnosisRepository(db),
		VisitorSession: NewVisitorSessionRepository(db),
	}
}
