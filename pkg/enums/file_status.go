package enums

import "fmt"

// FileStatus tracks the review state of a file attached to a task or project.
type FileStatus string

const (
	FileStatusPending   FileStatus = "pending"
	FileStatusValidated FileStatus = "validated"
	FileStatusRejected  FileStatus = "rejected"
)

var validFileStatuses = []FileStatus{
	FileStatusPending,
	FileStatusValidated,
	FileStatusRejected,
}

var fileStatusLabels = map[FileStatus]string{
	FileStatusPending:   "En attente",
	FileStatusValidated: "Validé",
	FileStatusRejected:  "Rejeté",
}

var fileStatusColors = map[FileStatus]string{
	FileStatusPending:   "yellow",
	FileStatusValidated: "green",
	FileStatusRejected:  "red",
}

// String implements fmt.Stringer.
func (s FileStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s FileStatus) IsValid() bool {
	for _, candidate := range validFileStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Label returns the display label used in notifications and list views.
func (s FileStatus) Label() string {
	if label, ok := fileStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Color returns the badge color associated with the status.
func (s FileStatus) Color() string {
	if color, ok := fileStatusColors[s]; ok {
		return color
	}
	return "gray"
}

// FileStatuses returns the canonical status values in declaration order.
func FileStatuses() []FileStatus {
	out := make([]FileStatus, len(validFileStatuses))
	copy(out, validFileStatuses)
	return out
}

// ParseFileStatus converts raw input into a FileStatus.
func ParseFileStatus(value string) (FileStatus, error) {
	for _, candidate := range validFileStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid file status %q", value)
}
