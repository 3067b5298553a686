package enums

import "fmt"

// RecruitmentStatus tracks the publication lifecycle of a job posting.
type RecruitmentStatus string

const (
	RecruitmentStatusDraft     RecruitmentStatus = "draft"
	RecruitmentStatusPublished RecruitmentStatus = "published"
	RecruitmentStatusClosed    RecruitmentStatus = "closed"
)

var validRecruitmentStatuses = []RecruitmentStatus{
	RecruitmentStatusDraft,
	RecruitmentStatusPublished,
	RecruitmentStatusClosed,
}

var recruitmentStatusLabels = map[RecruitmentStatus]string{
	RecruitmentStatusDraft:     "Brouillon",
	RecruitmentStatusPublished: "Publiée",
	RecruitmentStatusClosed:    "Fermée",
}

var recruitmentStatusColors = map[RecruitmentStatus]string{
	RecruitmentStatusDraft:     "gray",
	RecruitmentStatusPublished: "green",
	RecruitmentStatusClosed:    "red",
}

// String implements fmt.Stringer.
func (s RecruitmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s RecruitmentStatus) IsValid() bool {
	for _, candidate := range validRecruitmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the display label used in notifications and list views.
func (s RecruitmentStatus) Label() string {
	if label, ok := recruitmentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the badge color associated with the status.
func (s RecruitmentStatus) Color() string {
	if color, ok := recruitmentStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// RecruitmentStatuses returns the canonical status values in declaration order.
func RecruitmentStatuses() []RecruitmentStatus {
	out := make([]RecruitmentStatus, len(validRecruitmentStatuses))
	copy(out, validRecruitmentStatuses)
	return out
}

// ParseRecruitmentStatus converts raw input into a RecruitmentStatus.
func ParseRecruitmentStatus(value string) (RecruitmentStatus, error) {
	for _, candidate := range validRecruitmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recruitment status %q", value)
}
