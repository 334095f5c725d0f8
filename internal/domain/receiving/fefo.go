package receiving

import (
	"fmt"
	"time"
)

// DefaultFEFOPolicyMonths is the minimum remaining shelf life accepted at
// receiving time
const DefaultFEFOPolicyMonths = 6

// FEFOResult reports whether an expiry date satisfies the shelf-life
// policy at receiving time
type FEFOResult struct {
	Valid         bool   `json:"valid"`
	DaysRemaining int    `json:"days_remaining"`
	Message       string `json:"message"`
}

// ValidateFEFO checks an expiry date against the shelf-life buffer policy:
// already-expired stock is rejected outright, and stock expiring within
// policyMonths is rejected even though it has not expired yet.
func ValidateFEFO(expiryDate time.Time, policyMonths int) FEFOResult {
	if policyMonths <= 0 {
		policyMonths = DefaultFEFOPolicyMonths
	}

	now := time.Now()
	minExpiry := now.AddDate(0, policyMonths, 0)
	daysRemaining := int(expiryDate.Sub(now).Hours() / 24)

	if expiryDate.Before(now) {
		return FEFOResult{
			Valid:         false,
			DaysRemaining: daysRemaining,
			Message:       "Product is already expired",
		}
	}
	if expiryDate.Before(minExpiry) {
		return FEFOResult{
			Valid:         false,
			DaysRemaining: daysRemaining,
			Message:       fmt.Sprintf("Product expires in %d days, below policy minimum of %d months", daysRemaining, policyMonths),
		}
	}
	return FEFOResult{
		Valid:         true,
		DaysRemaining: daysRemaining,
		Message:       "Product meets shelf-life policy",
	}
}
