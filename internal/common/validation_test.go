package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_ErrOrNil(t *testing.T) {
	verr := NewValidationError()
	require.NoError(t, verr.ErrOrNil())

	verr.Add("email", "is required")
	require.Error(t, verr.ErrOrNil())
}

func TestValidationError_AccumulatesMessages(t *testing.T) {
	verr := NewValidationError()
	verr.Add("password", "must be at least 6 characters")
	verr.Add("password", "does not match confirmation")
	verr.Add("email", "is required")

	assert.Len(t, verr.Fields["password"], 2)
	assert.Len(t, verr.Fields["email"], 1)
	assert.Equal(t, "validation failed; email is required; password must be at least 6 characters; password does not match confirmation", verr.Error())
}

func TestValidationError_MatchesWithErrorsAs(t *testing.T) {
	verr := NewValidationError()
	verr.Add("title", "is required")

	wrapped := fmt.Errorf("creating task: %w", verr.ErrOrNil())

	var got *ValidationError
	require.True(t, errors.As(wrapped, &got))
	assert.Equal(t, []string{"is required"}, got.Fields["title"])
}
