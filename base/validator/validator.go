package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// IsValidAddress accepts only well formed hex addresses. The address must
// survive a round trip through its checksummed form.
func IsValidAddress(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return strings.EqualFold(common.HexToAddress(address).Hex(), address)
}

type CustomValidator struct {
	validate *validator.Validate
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}
