package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gonzalogodoyp13/NOTIFICA-IA-sub001/services"
	"github.com/labstack/echo/v4"
)

// APIError is the machine-distinguishable failure half of the envelope
type APIError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// APIResponse is the tagged envelope every endpoint returns
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// Error kinds exposed to callers
const (
	KindUnauthorized       = "unauthorized"
	KindNotFound           = "not_found"
	KindValidationError    = "validation_error"
	KindInvalidTransition  = "invalid_transition"
	KindPreconditionFailed = "precondition_failed"
	KindInternal           = "internal"
)

// respondOK writes a success envelope
func respondOK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, APIResponse{Success: true, Data: data})
}

// respondError maps a service error to the envelope. Internal details never
// leak; unknown errors become a generic internal failure.
func respondError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	var transitionErr *services.TransitionError
	var preconditionErr *services.PreconditionError
	var validatorErrs validator.ValidationErrors

	switch {
	case errors.Is(err, services.ErrRolNotFound),
		errors.Is(err, services.ErrCausaNotFound),
		errors.Is(err, services.ErrDiligenciaNotFound),
		errors.Is(err, services.ErrNotaNotFound),
		errors.Is(err, services.ErrDocumentoNotFound),
		errors.Is(err, services.ErrTipoNotFound):
		return respondFailure(c, http.StatusNotFound, KindNotFound, err.Error())

	case errors.As(err, &validationErr):
		return respondFailure(c, http.StatusUnprocessableEntity, KindValidationError, validationErr.Message)

	case errors.As(err, &validatorErrs):
		return respondFailure(c, http.StatusUnprocessableEntity, KindValidationError, validatorErrs.Error())

	case errors.As(err, &transitionErr):
		return respondFailure(c, http.StatusConflict, KindInvalidTransition, transitionErr.Error())

	case errors.As(err, &preconditionErr):
		return respondFailure(c, http.StatusPreconditionFailed, KindPreconditionFailed, preconditionErr.Message)

	default:
		return respondFailure(c, http.StatusInternalServerError, KindInternal, "Error interno")
	}
}

func respondFailure(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Kind: kind, Message: message},
	})
}

// respondUnauthorized writes the unauthorized envelope
func respondUnauthorized(c echo.Context) error {
	return respondFailure(c, http.StatusUnauthorized, KindUnauthorized, "No autenticado")
}

// RequestValidator adapts go-playground/validator to Echo's Validator
// interface
type RequestValidator struct {
	validator *validator.Validate
}

// NewRequestValidator builds the validator used for request payloads
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

// Validate implements echo.Validator
func (v *RequestValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
