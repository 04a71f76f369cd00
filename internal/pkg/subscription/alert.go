package subscription

import "fmt"

type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// trialWarningDays is the countdown threshold at which the trial banner escalates.
const trialWarningDays = 3

// DateLayout is used for dates shown in banners.
const DateLayout = "2006-01-02"

// Alert is the single banner derived from a state. Lifecycle causes always win
// over quota causes; they are never combined.
type Alert struct {
	Message  *string
	Severity Severity
}

func alertf(sev Severity, format string, args ...any) Alert {
	msg := fmt.Sprintf(format, args...)
	return Alert{Message: &msg, Severity: sev}
}

// BuildAlert maps a lifecycle outcome and quota decision to a banner.
func BuildAlert(out Outcome, q Quota) Alert {
	switch out.Status {
	case StatusTrial:
		days := derefInt(out.TrialDaysLeft)
		if days <= trialWarningDays {
			return alertf(SeverityWarning, "Your free trial ends in %d day(s). Upgrade to a paid plan to keep your QR codes running.", days)
		}
		return alertf(SeverityInfo, "%d day(s) left in your free trial.", days)
	case StatusGracePeriod:
		return alertf(SeverityError, "Your contract period has ended. The service will be suspended in %d day(s); QR code creation and visitor tracking are paused.", derefInt(out.GracePeriodDaysLeft))
	case StatusExpired:
		if out.Reason == ReasonUnrecognizedStatus {
			return alertf(SeverityError, "There is a problem with your subscription. Please contact support.")
		}
		return alertf(SeverityError, "Your contract has ended. Please choose a plan to resume the service.")
	case StatusPastDue:
		return alertf(SeverityError, "Your last payment failed. Please update your payment method to continue using the service.")
	case StatusCanceled:
		if out.EffectivePeriodEnd != nil {
			return alertf(SeverityWarning, "Your subscription has been canceled. The service remains available until %s.", out.EffectivePeriodEnd.Format(DateLayout))
		}
		return alertf(SeverityWarning, "Your subscription has been canceled.")
	}

	if entitlementFor(out.Status).resourceBearing && q.RemainingQRCodes != nil && *q.RemainingQRCodes == 0 {
		return quotaExhaustedAlert(q)
	}
	return Alert{Severity: SeverityNone}
}

func quotaExhaustedAlert(q Quota) Alert {
	return alertf(SeverityWarning, "You have reached the QR code limit of your %s plan (%d). Upgrade your plan to create more.", Lookup(q.EffectiveTier).DisplayName, derefInt(q.QRCodeLimit))
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
