package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/growthcast-api/internal/domain"
	"github.com/phrazzld/growthcast-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrChildNotFound, ErrDuplicateGrowthLog, ErrInvalidMonths, ErrInvalidInput}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}

func TestServiceError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ServiceError
		expected string
	}{
		{
			name:     "with underlying error",
			err:      &ServiceError{Operation: "create_child", Message: "failed to save", Err: errors.New("disk full")},
			expected: "create_child operation failed: failed to save: disk full",
		},
		{
			name:     "without underlying error",
			err:      &ServiceError{Operation: "create_service", Message: "engine cannot be nil"},
			expected: "create_service operation failed: engine cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewServiceError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, NewServiceError("op", "msg", nil))
	})

	t.Run("store child not found maps to sentinel", func(t *testing.T) {
		err := NewServiceError("get_child", "lookup failed", fmt.Errorf("wrapped: %w", store.ErrChildNotFound))
		assert.Same(t, ErrChildNotFound, err)
	})

	t.Run("duplicate growth log maps to sentinel", func(t *testing.T) {
		err := NewServiceError("record", "insert failed", store.ErrGrowthLogExists)
		assert.Same(t, ErrDuplicateGrowthLog, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		err := NewServiceError("record", "invalid", domain.ErrInvalidMeasurement)

		var svcErr *ServiceError
		assert.True(t, errors.As(err, &svcErr))
		assert.Equal(t, "record", svcErr.Operation)
		assert.ErrorIs(t, err, domain.ErrInvalidMeasurement)
	})
}
