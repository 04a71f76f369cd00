package subscription

import "errors"

var (
	ErrFetchSubscription = errors.New("subscription.errors.fetch_subscription_failed")
	ErrCountChannels     = errors.New("subscription.errors.count_channels_failed")
)
