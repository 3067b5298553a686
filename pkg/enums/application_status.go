package enums

import "fmt"

// ApplicationStatus tracks a candidate application attached to a posting.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted"
	ApplicationStatusInReview  ApplicationStatus = "in_review"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

var validApplicationStatuses = []ApplicationStatus{
	ApplicationStatusSubmitted,
	ApplicationStatusInReview,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

var applicationStatusLabels = map[ApplicationStatus]string{
	ApplicationStatusSubmitted: "Soumise",
	ApplicationStatusInReview:  "En cours d'examen",
	ApplicationStatusAccepted:  "Acceptée",
	ApplicationStatusRejected:  "Refusée",
}

var applicationStatusColors = map[ApplicationStatus]string{
	ApplicationStatusSubmitted: "yellow",
	ApplicationStatusInReview:  "blue",
	ApplicationStatusAccepted:  "green",
	ApplicationStatusRejected:  "red",
}

// String implements fmt.Stringer.
func (s ApplicationStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ApplicationStatus) IsValid() bool {
	for _, candidate := range validApplicationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the display label shown in list views and emails.
func (s ApplicationStatus) Label() string {
	if label, ok := applicationStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the badge color associated with the status.
func (s ApplicationStatus) Color() string {
	if color, ok := applicationStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// ParseApplicationStatus converts raw input into an ApplicationStatus.
func ParseApplicationStatus(value string) (ApplicationStatus, error) {
	for _, candidate := range validApplicationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid application status %q", value)
}
