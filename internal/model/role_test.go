package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"client", "hall_owner", "admin"} {
		r, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, valid, r.String())
	}
	for _, invalid := range []string{"", "owner", "superadmin", "Client", "ADMIN"} {
		_, ok := ParseRole(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestValidateHallFields(t *testing.T) {
	assert.NoError(t, ValidateHallFields(500, 12.5))
	assert.NoError(t, ValidateHallFields(1, 0))
	assert.ErrorIs(t, ValidateHallFields(0, 10), ErrInvalidCapacity)
	assert.ErrorIs(t, ValidateHallFields(-5, 10), ErrInvalidCapacity)
	assert.ErrorIs(t, ValidateHallFields(100, -0.01), ErrInvalidPrice)
}

func TestParseHallStatus(t *testing.T) {
	st, ok := ParseHallStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, HallConfirmed, st)

	st, ok = ParseHallStatus("unconfirmed")
	assert.True(t, ok)
	assert.Equal(t, HallUnconfirmed, st)

	_, ok = ParseHallStatus("pending")
	assert.False(t, ok)
}
