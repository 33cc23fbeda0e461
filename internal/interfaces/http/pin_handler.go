package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/application/usecase"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

// PinHandler compra de pines, inventario local, catálogo del proveedor y validación de jugadores.
type PinHandler struct {
	purchase  *pins.PurchaseUseCase
	inventory *pins.InventoryUseCase
	sessions  *session.Store
}

// NewPinHandler construye el handler.
func NewPinHandler(purchase *pins.PurchaseUseCase, inventory *pins.InventoryUseCase, sessions *session.Store) *PinHandler {
	return &PinHandler{purchase: purchase, inventory: inventory, sessions: sessions}
}

// Purchase godoc
// @Summary      Comprar pines
// @Description  Autoriza y captura en lotes de hasta 10. Responde 207 si se emitieron menos pines de los pedidos o si la venta no quedó registrada; los pines emitidos siempre vienen en la respuesta.
// @Tags         pins
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchasePinsRequest  true  "producto y cantidad (1-100)"
// @Success      201   {object}  dto.PurchasePinsResponse
// @Success      207   {object}  dto.PurchasePinsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/pins/purchase [post]
func (h *PinHandler) Purchase(c *fiber.Ctx) error {
	var in dto.PurchasePinsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Product == "" {
		return validation(c, "product es requerido")
	}
	if in.Quantity < 1 || in.Quantity > pins.MaxQuantity {
		return validation(c, "quantity debe estar entre 1 y "+strconv.Itoa(pins.MaxQuantity))
	}

	sess := GetSession(c)
	creds, err := h.sessions.Credentials(sess)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.purchase.Purchase(c.UserContext(), pins.Buyer{
		Token:       sess.BackendToken,
		User:        sess.User,
		Credentials: creds,
	}, pins.PurchaseRequest{
		ProductCode: in.Product,
		Quantity:    in.Quantity,
		ClientName:  in.ClientName,
		ClientEmail: in.ClientEmail,
	})
	if err != nil {
		return writeError(c, err)
	}

	if res.SessionExpired {
		// los pines se entregan igual; la sesión se cierra al salir del middleware
		c.Locals(localSessionExpired, true)
	}
	status := fiber.StatusCreated
	if res.Partial() || !res.SaleRecorded {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(toPurchaseResponse(res))
}

func toPurchaseResponse(res *pins.PurchaseResult) dto.PurchasePinsResponse {
	out := dto.PurchasePinsResponse{
		OrderID:      res.OrderID,
		Product:      res.ProductCode,
		Requested:    res.Requested,
		Issued:       len(res.Pins),
		UnitPrice:    res.UnitPrice,
		TotalPrice:   res.TotalPrice,
		SaleRecorded: res.SaleRecorded,
		Pins:         make([]dto.PinResponse, 0, len(res.Pins)),
		Warnings:     res.Warnings,
	}
	if res.Purchase != nil {
		out.PurchaseID = res.Purchase.ID
	}
	for _, p := range res.Pins {
		out.Pins = append(out.Pins, usecase.ToPinResponse(p))
	}
	return out
}

// List godoc
// @Summary      Mis pines
// @Tags         pins
// @Security     Bearer
// @Produce      json
// @Param        usado     query  bool    false  "filtrar por usado"
// @Param        owner_id  query  string  false  "dueño (solo admin/master)"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PinListResponse
// @Router       /api/pins [get]
func (h *PinHandler) List(c *fiber.Ctx) error {
	f := repository.PinFilter{
		OwnerID: c.Query("owner_id"),
		Limit:   c.QueryInt("limit", 50),
		Offset:  c.QueryInt("offset", 0),
	}
	if raw := c.Query("usado"); raw != "" {
		usado, err := strconv.ParseBool(raw)
		if err != nil {
			return validation(c, "usado debe ser true o false")
		}
		f.Usado = &usado
	}
	list, err := h.inventory.List(c.UserContext(), GetSession(c).User, f)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.PinListResponse{
		Items: make([]dto.PinResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, p := range list {
		out.Items = append(out.Items, usecase.ToPinResponse(p))
	}
	return c.JSON(out)
}

// MarkUsed godoc
// @Summary      Marcar pin como usado
// @Description  Solo existe la transición usado=false → true. Repetirla devuelve el pin sin cambios.
// @Tags         pins
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pin"
// @Success      200  {object}  dto.PinResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pins/{id}/used [patch]
func (h *PinHandler) MarkUsed(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pin, err := h.inventory.MarkUsed(c.UserContext(), GetSession(c).User, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToPinResponse(pin))
}

// Catalog godoc
// @Summary      Catálogo del proveedor
// @Tags         pins
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Failure      428  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *PinHandler) Catalog(c *fiber.Ctx) error {
	creds, err := h.sessions.Credentials(GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.purchase.Catalog(c.UserContext(), creds)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(usecase.ToProductList(list))
}

// ValidatePlayer godoc
// @Summary      Validar id de jugador
// @Tags         pins
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del jugador"
// @Success      200  {object}  dto.PlayerValidationResponse
// @Router       /api/players/{id}/validate [get]
func (h *PinHandler) ValidatePlayer(c *fiber.Ctx) error {
	creds, err := h.sessions.Credentials(GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	v, err := h.purchase.ValidatePlayer(c.UserContext(), creds, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PlayerValidationResponse{PlayerID: id, Valid: v.Valid, Nickname: v.Nickname, Message: v.Message})
}
