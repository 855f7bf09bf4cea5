package inventario

import "errors"

// Sentinel errors for inventory operations, checkable with errors.Is().
var (
	// ErrProductoNotFound indicates the requested product does not exist.
	ErrProductoNotFound = errors.New("producto not found")

	// ErrVentaNotFound indicates the requested sale does not exist.
	ErrVentaNotFound = errors.New("venta not found")

	// ErrNombreRequired indicates a product was submitted without a name.
	ErrNombreRequired = errors.New("producto nombre is required")

	// ErrCantidadInvalid indicates a sale quantity of zero or less.
	ErrCantidadInvalid = errors.New("venta cantidad must be positive")
)
