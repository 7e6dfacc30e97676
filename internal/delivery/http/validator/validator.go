// Package validator plugs go-playground/validator into echo's Validator interface.
package validator

import (
	domainerrors "blush/internal/domain/errors"

	playgroundvalidator "github.com/go-playground/validator/v10"
)

// echoValidator adapts a validator.Validate instance to echo.Validator.
type echoValidator struct {
	validate *playgroundvalidator.Validate
}

// New constructs the request validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Struct tag violations surface as a
// 400-class AppError carrying the field details.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
