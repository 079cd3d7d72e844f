package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrChildNotFound", err: ErrChildNotFound, expected: true},
		{name: "wrapped ErrChildNotFound", err: fmt.Errorf("lookup: %w", ErrChildNotFound), expected: true},
		{
			name:     "StoreError wrapping ErrChildNotFound",
			err:      NewStoreError("child", "get", "missing", ErrChildNotFound),
			expected: true,
		},
		{name: "duplicate is not not-found", err: ErrGrowthLogExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(ErrGrowthLogExists))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrGrowthLogExists)))
	assert.False(t, IsDuplicateError(ErrChildNotFound))
	assert.False(t, IsDuplicateError(nil))
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("growth_log", "list", "query failed", cause)
	assert.Equal(t, "list operation on growth_log failed: query failed: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", withCause), &se))
	assert.Equal(t, "growth_log", se.Entity)

	withoutCause := NewStoreError("child", "create", "invalid name", nil)
	assert.Equal(t, "create operation on child failed: invalid name", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())
}
