package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrValidation,
		ErrUnauthenticated,
		ErrDependency,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b,
					"sentinels should be distinct: %v vs %v", a, b)
			}
		}
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "with field",
			field:       "categoryId",
			message:     "is required",
			expectedMsg: "validation failed for categoryId: is required",
		},
		{
			name:        "without field",
			field:       "",
			message:     "request body is not valid JSON",
			expectedMsg: "validation failed: request body is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidation(err))

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Nil(t, valErr.Value)
		})
	}
}

func TestValidationErrorWithValue(t *testing.T) {
	err := NewValidationErrorWithValue("query", "must not be blank", "   ")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "   ", valErr.Value)
}

func TestUnauthenticatedError(t *testing.T) {
	t.Run("with operation", func(t *testing.T) {
		err := NewUnauthenticatedError("saveFavoriteQuote")

		assert.Equal(t, `operation "saveFavoriteQuote" requires an authenticated caller`, err.Error())
		require.ErrorIs(t, err, ErrUnauthenticated)
		assert.True(t, IsUnauthenticated(err))
		assert.False(t, IsValidation(err))
	})

	t.Run("without operation", func(t *testing.T) {
		err := NewUnauthenticatedError("")
		assert.Equal(t, "authenticated caller required", err.Error())
	})
}

func TestDependencyError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDependencyError(FailureNetwork, "quotable", "RandomQuote", cause)

	assert.Equal(t, "quotable RandomQuote failed (network): connection refused", err.Error())
	require.ErrorIs(t, err, ErrDependency)
	require.ErrorIs(t, err, cause)
	assert.True(t, IsDependency(err))
	assert.False(t, IsValidation(err))
	assert.False(t, IsUnauthenticated(err))

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "quotable", depErr.Dependency)
	assert.Equal(t, "RandomQuote", depErr.Operation)
}

func TestDependencyError_NilCause(t *testing.T) {
	err := NewDependencyError(FailureStore, "favorites", "List", nil)

	assert.Equal(t, "favorites List failed (store)", err.Error())
	assert.True(t, IsDependency(err))
}

func TestFailureKindOf(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := NewDependencyError(FailureMalformedUpstream, "quotable", "SearchQuotes", nil)

		kind, ok := FailureKindOf(err)
		require.True(t, ok)
		assert.Equal(t, FailureMalformedUpstream, kind)
	})

	t.Run("wrapped", func(t *testing.T) {
		inner := NewDependencyError(FailureUpstreamStatus, "quotable", "QuotesByTag", nil)
		err := fmt.Errorf("fetching quotes: %w", inner)

		kind, ok := FailureKindOf(err)
		require.True(t, ok)
		assert.Equal(t, FailureUpstreamStatus, kind)
	})

	t.Run("not a dependency error", func(t *testing.T) {
		_, ok := FailureKindOf(NewValidationError("query", "is required"))
		assert.False(t, ok)
	})
}

func TestFailureKind_String(t *testing.T) {
	tests := []struct {
		kind     FailureKind
		expected string
	}{
		{FailureNetwork, "network"},
		{FailureUpstreamStatus, "upstream_status"},
		{FailureMalformedUpstream, "malformed_upstream"},
		{FailureStore, "store"},
		{FailureKind(0), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}
