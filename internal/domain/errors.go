package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Cada uno es una "clase" de error; los mensajes concretos se construyen con Error.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidParameter   = errors.New("parámetro inválido")
	ErrInvalidField       = errors.New("atributo no permitido")
	ErrNoChanges          = errors.New("no se proporcionaron datos para actualizar")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("contraseña incorrecta")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrClosedOrder        = errors.New("el pedido está cerrado")
	ErrTokenRevoked       = errors.New("token revocado")
)

// Error asocia un mensaje legible a una clase de error.
// errors.Is(err, domain.ErrNotFound) sigue funcionando gracias a Unwrap.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Unwrap devuelve la clase de error.
func (e *Error) Unwrap() error { return e.Kind }

func newf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf construye un ErrNotFound con mensaje.
func NotFoundf(format string, args ...interface{}) error { return newf(ErrNotFound, format, args...) }

// Invalidf construye un ErrInvalidInput con mensaje.
func Invalidf(format string, args ...interface{}) error {
	return newf(ErrInvalidInput, format, args...)
}

// InvalidParameterf construye un ErrInvalidParameter con mensaje.
func InvalidParameterf(format string, args ...interface{}) error {
	return newf(ErrInvalidParameter, format, args...)
}

// InvalidFieldf construye un ErrInvalidField con mensaje.
func InvalidFieldf(format string, args ...interface{}) error {
	return newf(ErrInvalidField, format, args...)
}

// Duplicatef construye un ErrDuplicate con mensaje.
func Duplicatef(format string, args ...interface{}) error {
	return newf(ErrDuplicate, format, args...)
}

// Forbiddenf construye un ErrForbidden con mensaje.
func Forbiddenf(format string, args ...interface{}) error {
	return newf(ErrForbidden, format, args...)
}

// ClosedOrderf construye un ErrClosedOrder con mensaje.
func ClosedOrderf(format string, args ...interface{}) error {
	return newf(ErrClosedOrder, format, args...)
}

// InsufficientStockError detalla el producto sin stock suficiente.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock insuficiente para '%s'. Disponible: %d, solicitado: %d",
		e.ProductName, e.Available, e.Requested)
}

// Is permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
