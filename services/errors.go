package services

import (
	"errors"
	"fmt"
)

// Not-found sentinels. A row that exists under another office resolves to
// the same error as a row that does not exist at all, so callers cannot
// probe cross-tenant ids.
var (
	ErrRolNotFound        = errors.New("rol no encontrado")
	ErrCausaNotFound      = errors.New("causa no encontrada")
	ErrDiligenciaNotFound = errors.New("diligencia no encontrada")
	ErrNotaNotFound       = errors.New("nota no encontrada")
	ErrDocumentoNotFound  = errors.New("documento no encontrado")
	ErrTipoNotFound       = errors.New("tipo de diligencia no encontrado")
)

// ValidationError indicates a payload shape or semantic violation. Detected
// before any write; the message carries enough detail to fix the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError indicates a requested estado edge outside the legal
// adjacency table, including any attempt to leave archivado.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición no permitida: %s -> %s", e.From, e.To)
}

// PreconditionError indicates an edge that is legal in principle but blocked
// by the data, e.g. terminado requested with incomplete diligencias.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
