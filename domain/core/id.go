package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// DomainID identifies one dataset/context (hurricane, token, ...).
	DomainID string
	// TermSetID identifies one published interaction-term version.
	TermSetID ID
	// ResultID identifies a single scoring result.
	ResultID ID
	// ReportID identifies a validation report.
	ReportID ID
	// RunID identifies one detection or validation batch run.
	RunID ID
	// FeatureKey names a numeric feature column (composite, primitive or fundamental).
	FeatureKey string
)

// String conversions for domain IDs
func (id DomainID) String() string  { return string(id) }
func (id TermSetID) String() string { return ID(id).String() }
func (id ResultID) String() string  { return ID(id).String() }
func (id ReportID) String() string  { return ID(id).String() }
func (id RunID) String() string     { return ID(id).String() }
func (k FeatureKey) String() string { return string(k) }

// ParseDomainID parses a string into DomainID
func ParseDomainID(s string) (DomainID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("domain ID cannot be empty")
	}
	return DomainID(strings.ToLower(strings.TrimSpace(s))), nil
}

// ParseTermSetID parses a string into TermSetID
func ParseTermSetID(s string) (TermSetID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("term set ID cannot be empty")
	}
	return TermSetID(s), nil
}

// ParseFeatureKey parses a string into FeatureKey
func ParseFeatureKey(s string) (FeatureKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("feature key cannot be empty")
	}
	return FeatureKey(s), nil
}
