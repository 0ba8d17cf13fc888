package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator constructs the validator used for all request
// bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.  Tag violations are reported as a
// 400 so Echo's error handler does not turn them into a 500.
func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
