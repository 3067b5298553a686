package enums

import "fmt"

// SubscriptionStatus tracks the billing lifecycle of a workspace subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

var validSubscriptionStatuses = []SubscriptionStatus{
	SubscriptionStatusPending,
	SubscriptionStatusActive,
	SubscriptionStatusCancelled,
	SubscriptionStatusExpired,
}

var subscriptionStatusLabels = map[SubscriptionStatus]string{
	SubscriptionStatusPending:   "En attente",
	SubscriptionStatusActive:    "Actif",
	SubscriptionStatusCancelled: "Annulé",
	SubscriptionStatusExpired:   "Expiré",
}

var subscriptionStatusColors = map[SubscriptionStatus]string{
	SubscriptionStatusPending:   "yellow",
	SubscriptionStatusActive:    "green",
	SubscriptionStatusCancelled: "red",
	SubscriptionStatusExpired:   "gray",
}

// String implements fmt.Stringer.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s SubscriptionStatus) IsValid() bool {
	for _, candidate := range validSubscriptionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the display label used in notifications and list views.
func (s SubscriptionStatus) Label() string {
	if label, ok := subscriptionStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the badge color associated with the status.
func (s SubscriptionStatus) Color() string {
	if color, ok := subscriptionStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// SubscriptionStatuses returns the canonical status values in declaration order.
func SubscriptionStatuses() []SubscriptionStatus {
	out := make([]SubscriptionStatus, len(validSubscriptionStatuses))
	copy(out, validSubscriptionStatuses)
	return out
}

// ParseSubscriptionStatus converts raw input into a SubscriptionStatus.
func ParseSubscriptionStatus(value string) (SubscriptionStatus, error) {
	for _, candidate := range validSubscriptionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription status %q", value)
}
