package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"notblank"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Email  string `json:"email" validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{Name: "Ana", Rating: 5}))

	err := v.Validate(&sample{Name: "   ", Rating: 6, Email: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "rating must be at most 5")
	assert.Contains(t, err.Error(), "email must be a valid email")
}
