package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrSessionExpired        = errors.New("sesión expirada")
	ErrMissingCredentials    = errors.New("credenciales del proveedor de pines no configuradas")
	ErrProviderRejected      = errors.New("el proveedor de pines rechazó la operación")
	ErrProductUnavailable    = errors.New("producto no disponible")
	ErrPurchaseLimitExceeded = errors.New("la cantidad supera el límite de compra disponible")
	ErrInsufficientBalance   = errors.New("saldo insuficiente")
	ErrNoPins                = errors.New("no se obtuvo ningún pin del proveedor")
	ErrSaleNotRecorded       = errors.New("la venta no se pudo registrar en el backend")
)
