package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// reportNamespace scopes content-derived report IDs.
var reportNamespace = uuid.MustParse("6f1c2b9e-4a53-5d0e-9c7a-2b8f1e3d4c5a")

// NewContentID derives a stable UUIDv5 from a content hash. Identical content
// always yields the identical ID.
func NewContentID(h Hash) ID {
	return ID(uuid.NewSHA1(reportNamespace, []byte(h)).String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ReportID identifies a profiling report
type ReportID ID

func (id ReportID) String() string { return ID(id).String() }

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("report ID %q is not a UUID: %w", s, err)
	}
	return ReportID(s), nil
}
