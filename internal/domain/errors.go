package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInconsistentStock  = errors.New("stock inconsistente")
)

// InsufficientStockError indica que la cantidad solicitada supera el saldo actual.
// Variant queda vacío para productos sin parámetros. El caller necesita saber qué
// parámetro falló para corregir y reenviar; el sentinel solo no alcanza.
type InsufficientStockError struct {
	ProductID string
	Variant   string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("stock insuficiente del parámetro %q (solicitado %d, disponible %d)", e.Variant, e.Requested, e.Available)
	}
	return fmt.Sprintf("stock insuficiente (solicitado %d, disponible %d)", e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ConsistencyError indica que el agregado cacheado no coincide con la suma de parámetros.
// Nunca se tolera en silencio: la operación completa falla antes de persistir divergencia.
type ConsistencyError struct {
	ProductID  string
	Location   string
	Aggregate  int64
	VariantSum int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("stock inconsistente de %s en %s: agregado %d != suma de parámetros %d",
		e.ProductID, e.Location, e.Aggregate, e.VariantSum)
}

func (e *ConsistencyError) Unwrap() error { return ErrInconsistentStock }
