package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enumProbe struct {
	Rarity   string `validate:"omitempty,rarity"`
	ItemType string `validate:"omitempty,itemtype"`
	Trend    string `validate:"omitempty,trend"`
	Status   string `validate:"omitempty,reqstatus"`
}

func TestEnumValidations(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(enumProbe{}))
	assert.NoError(t, v.ValidateStruct(enumProbe{
		Rarity: "rare", ItemType: "gamepass", Trend: "falling", Status: "approved",
	}))

	assert.Error(t, v.ValidateStruct(enumProbe{Rarity: "mythic"}))
	assert.Error(t, v.ValidateStruct(enumProbe{ItemType: "weapon"}))
	assert.Error(t, v.ValidateStruct(enumProbe{Trend: "sideways"}))
	assert.Error(t, v.ValidateStruct(enumProbe{Status: "maybe"}))
}

func TestFormatValidationError(t *testing.T) {
	type form struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
		Demand   int    `validate:"gte=1,lte=10"`
	}

	err := GetValidator().ValidateStruct(form{Email: "not-an-email", Demand: 12})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["username"])
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Must be at most 10", fields["demand"])
}

func TestFormatValidationErrorNonValidationError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])

	assert.Nil(t, FormatValidationError(nil))
}
