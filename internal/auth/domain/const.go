// Package domain defines authentication and authorization domain models.
// Users are granted capabilities through a single named role; tokens carry a
// snapshot of those capabilities taken when they were issued.
package domain

import (
	"fmt"
	"slices"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// Capability is the unit of authorization granularity.
type Capability string

const (
	// CreateCapability allows creating records.
	CreateCapability Capability = "create"

	// ReadCapability allows reading records.
	ReadCapability Capability = "read"

	// UpdateCapability allows replacing or patching records.
	UpdateCapability Capability = "update"

	// DeleteCapability allows removing records.
	DeleteCapability Capability = "delete"
)

// AllCapabilities returns every known capability in canonical order.
func AllCapabilities() []Capability {
	return []Capability{CreateCapability, ReadCapability, UpdateCapability, DeleteCapability}
}

// IsValid reports whether c is a known capability.
func (c Capability) IsValid() bool {
	return slices.Contains(AllCapabilities(), c)
}

// ParseCapabilities converts raw strings to capabilities, rejecting unknown
// values and dropping duplicates.
func ParseCapabilities(values []string) ([]Capability, error) {
	capabilities := make([]Capability, 0, len(values))
	for _, value := range values {
		capability := Capability(value)
		if !capability.IsValid() {
			return nil, apperrors.Wrap(ErrInvalidCapability, fmt.Sprintf("%q", value))
		}
		if !slices.Contains(capabilities, capability) {
			capabilities = append(capabilities, capability)
		}
	}
	return capabilities, nil
}

// HasAll reports whether granted contains every required capability.
// An empty requirement is always satisfied.
func HasAll(granted []Capability, required ...Capability) bool {
	for _, capability := range required {
		if !slices.Contains(granted, capability) {
			return false
		}
	}
	return true
}
