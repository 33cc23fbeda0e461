package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain"
)

// errorMapping código HTTP y código de error por error de dominio. El orden importa: gana el primero que coincide.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrMissingCredentials, fiber.StatusPreconditionRequired, "MISSING_PROVIDER_CREDENTIALS"},
	{domain.ErrProductUnavailable, fiber.StatusConflict, "PRODUCT_UNAVAILABLE"},
	{domain.ErrPurchaseLimitExceeded, fiber.StatusUnprocessableEntity, "PURCHASE_LIMIT_EXCEEDED"},
	{domain.ErrInsufficientBalance, fiber.StatusPaymentRequired, "INSUFFICIENT_BALANCE"},
	{domain.ErrNoPins, fiber.StatusBadGateway, "NO_PINS"},
	{domain.ErrProviderRejected, fiber.StatusBadGateway, "PROVIDER_REJECTED"},
}

// writeError traduce err a dto.ErrorResponse. Un ErrSessionExpired marca la sesión para que
// AuthMiddleware la cierre al terminar la petición.
func writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrSessionExpired) {
		c.Locals(localSessionExpired, true)
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
