package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

func TestCapability_IsValid(t *testing.T) {
	for _, capability := range AllCapabilities() {
		assert.True(t, capability.IsValid(), capability)
	}
	assert.False(t, Capability("write").IsValid())
	assert.False(t, Capability("").IsValid())
}

func TestParseCapabilities(t *testing.T) {
	t.Run("Success_DropsDuplicates", func(t *testing.T) {
		capabilities, err := ParseCapabilities([]string{"read", "create", "read"})
		require.NoError(t, err)
		assert.Equal(t, []Capability{ReadCapability, CreateCapability}, capabilities)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		capabilities, err := ParseCapabilities(nil)
		require.NoError(t, err)
		assert.Empty(t, capabilities)
		assert.NotNil(t, capabilities)
	})

	t.Run("Error_UnknownCapability", func(t *testing.T) {
		_, err := ParseCapabilities([]string{"read", "encrypt"})
		assert.ErrorIs(t, err, ErrInvalidCapability)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), `"encrypt"`)
	})
}

func TestHasAll(t *testing.T) {
	granted := []Capability{CreateCapability, ReadCapability, UpdateCapability}

	tests := []struct {
		name     string
		required []Capability
		expected bool
	}{
		{"Success_NoRequirement", nil, true},
		{"Success_Single", []Capability{ReadCapability}, true},
		{"Success_Several", []Capability{CreateCapability, UpdateCapability}, true},
		{"Failure_Missing", []Capability{DeleteCapability}, false},
		{"Failure_AllFour", AllCapabilities(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasAll(granted, tt.required...))
		})
	}

	assert.False(t, HasAll(nil, ReadCapability))
	assert.True(t, HasAll(nil))
}

func TestErrors(t *testing.T) {
	assert.True(t, apperrors.Is(ErrInvalidCredentials, apperrors.ErrUnauthorized))
	assert.True(t, apperrors.Is(ErrInvalidToken, apperrors.ErrUnauthorized))
	assert.True(t, apperrors.Is(ErrInsufficientCapability, apperrors.ErrForbidden))
	assert.True(t, apperrors.Is(ErrUserNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrRoleNotFound, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(ErrUserAlreadyExists, apperrors.ErrConflict))
	assert.True(t, apperrors.Is(ErrRoleAlreadyExists, apperrors.ErrConflict))
}
