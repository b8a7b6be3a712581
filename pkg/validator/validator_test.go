package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email   string `validate:"required,email"`
	CheckIn string `validate:"omitempty,dateonly"`
}

func TestValidateValidStruct(t *testing.T) {
	assert.NoError(t, Validate(context.Background(), sample{
		Email:   "attendee@example.com",
		CheckIn: "2026-02-05",
	}))
}

func TestValidateMissingRequiredField(t *testing.T) {
	err := Validate(context.Background(), sample{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrFieldRequired)
}

func TestValidateBadDate(t *testing.T) {
	err := Validate(context.Background(), sample{
		Email:   "attendee@example.com",
		CheckIn: "05-02-2026",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestValidateNonStructArgument(t *testing.T) {
	// a non-struct argument must surface the underlying error, not pass
	assert.Error(t, Validate(context.Background(), "not a struct"))
}
