package models

import "time"

// Stored lifecycle values. grace_period and expired are derived at read time and
// must never be written here.
const (
	SubscriptionStatusTrial    = "trial"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription is the persisted billing record of a clinic (exactly one per clinic).
type Subscription struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	ClinicID               uint       `gorm:"not null;uniqueIndex" json:"clinic_id"`
	Status                 string     `gorm:"type:varchar(32);not null;default:'trial';index" json:"status" validate:"required,oneof=trial active past_due canceled"`
	PlanTier               string     `gorm:"type:varchar(50);not null;default:'starter'" json:"plan_tier" validate:"required,max=50"`
	TrialEnd               *time.Time `gorm:"type:timestamp;default:null" json:"trial_end,omitempty"`
	CurrentPeriodStart     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	GracePeriodEnd         *time.Time `gorm:"type:timestamp;default:null" json:"grace_period_end,omitempty"`
	CanceledAt             *time.Time `gorm:"type:timestamp;default:null" json:"canceled_at,omitempty"`
	Provider               string     `gorm:"type:varchar(20);default:''" json:"provider"`
	ProviderCustomerID     string     `gorm:"type:varchar(191);default:''" json:"-"`
	ProviderSubscriptionID string     `gorm:"type:varchar(191);default:'';index" json:"-"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
