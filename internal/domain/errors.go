package domain

import "errors"

// Errores de dominio del ledger de inventario (sin dependencias externas).
// Los adaptadores los combinan con la causa original; usar errors.Is para clasificarlos.
var (
	ErrValidation   = errors.New("datos inválidos")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrIntegrity    = errors.New("violación de integridad")
	ErrInvalidState = errors.New("el stock no puede quedar negativo")
	ErrStorage      = errors.New("error de almacenamiento")
)

// Wrap adjunta el error de dominio kind a cause conservando ambos en la cadena.
// Devuelve nil si cause es nil.
func Wrap(kind error, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, kind) {
		return cause
	}
	return &kindError{kind: kind, cause: cause}
}

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string { return e.kind.Error() + ": " + e.cause.Error() }

func (e *kindError) Unwrap() []error { return []error{e.kind, e.cause} }
