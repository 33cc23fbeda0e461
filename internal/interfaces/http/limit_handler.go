package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/usecase"
)

// LimitHandler cupos de compra por vendedor.
type LimitHandler struct {
	uc *usecase.LimitUseCase
}

// NewLimitHandler construye el handler.
func NewLimitHandler(uc *usecase.LimitUseCase) *LimitHandler {
	return &LimitHandler{uc: uc}
}

// Get godoc
// @Summary      Cupos de un vendedor
// @Description  Un vendedor solo puede consultar los suyos.
// @Tags         limits
// @Security     Bearer
// @Produce      json
// @Param        sellerId  path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.PurchaseLimitsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/limits/{sellerId} [get]
func (h *LimitHandler) Get(c *fiber.Ctx) error {
	sellerID := c.Params("sellerId")
	if sellerID != GetUserID(c) && !isStaffRole(GetRole(c)) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo puede consultar sus propios cupos"})
	}
	out, err := h.uc.Get(c.UserContext(), GetSession(c).BackendToken, sellerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cupos
// @Tags         limits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sellerId  path  string                           true  "ID del vendedor"
// @Param        body      body  dto.UpdatePurchaseLimitsRequest  true  "Lista completa de cupos"
// @Success      200  {object}  dto.PurchaseLimitsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/limits/{sellerId} [put]
func (h *LimitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseLimitsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c).BackendToken, c.Params("sellerId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Restore godoc
// @Summary      Restaurar cupos
// @Description  Devuelve cada cupo a su originLimit.
// @Tags         limits
// @Security     Bearer
// @Produce      json
// @Param        sellerId  path  string  true  "ID del vendedor"
// @Success      200  {object}  dto.PurchaseLimitsResponse
// @Router       /api/limits/{sellerId}/restore [post]
func (h *LimitHandler) Restore(c *fiber.Ctx) error {
	out, err := h.uc.Restore(c.UserContext(), GetSession(c).BackendToken, c.Params("sellerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
