package enums

import "fmt"

// PortalStatus tracks a portal through review, confirmation and fulfillment.
type PortalStatus string

const (
	PortalStatusPending   PortalStatus = "pending"
	PortalStatusActive    PortalStatus = "active"
	PortalStatusShipped   PortalStatus = "shipped"
	PortalStatusCompleted PortalStatus = "completed"
	PortalStatusCancelled PortalStatus = "cancelled"
	PortalStatusConfirmed PortalStatus = "confirmed"
)

var validPortalStatuses = []PortalStatus{
	PortalStatusPending,
	PortalStatusActive,
	PortalStatusShipped,
	PortalStatusCompleted,
	PortalStatusCancelled,
	PortalStatusConfirmed,
}

// String implements fmt.Stringer.
func (p PortalStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PortalStatus.
func (p PortalStatus) IsValid() bool {
	for _, candidate := range validPortalStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePortalStatus converts raw input into a PortalStatus.
func ParsePortalStatus(value string) (PortalStatus, error) {
	for _, candidate := range validPortalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid portal status %q", value)
}

// AdminSettable reports whether the admin dashboard may set this status
// directly. Shipped and confirmed are reached through fulfillment and the
// customer's own confirmation.
func (p PortalStatus) AdminSettable() bool {
	switch p {
	case PortalStatusPending, PortalStatusActive, PortalStatusCompleted, PortalStatusCancelled:
		return true
	}
	return false
}
