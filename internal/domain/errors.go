package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La ausencia de un recurso en una consulta por ID no es error: los repositorios devuelven (nil, nil).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnsupported       = errors.New("operación no implementada")
	ErrLoad              = errors.New("error de carga de datos")
	ErrDelivery          = errors.New("error de entrega del reporte")
)
