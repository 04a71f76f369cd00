package billing

import "errors"

var (
	ErrNoSubscription = errors.New("billing.errors.no_subscription")
	ErrInvalidPlan    = errors.New("billing.errors.invalid_plan")
	ErrInvalidStatus  = errors.New("billing.errors.invalid_status")
)
