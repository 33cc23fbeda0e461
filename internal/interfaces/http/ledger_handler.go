package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/usecase"
)

const queryDateLayout = "2006-01-02"

// LedgerHandler ventas y movimientos de saldo del backend.
type LedgerHandler struct {
	uc  *usecase.LedgerUseCase
	loc *time.Location
}

// NewLedgerHandler loc fija cómo se interpretan from/to.
func NewLedgerHandler(uc *usecase.LedgerUseCase, loc *time.Location) *LedgerHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerHandler{uc: uc, loc: loc}
}

// filter arma el filtro desde el query string. Vendedores y clientes solo ven lo suyo.
func (h *LedgerHandler) filter(c *fiber.Ctx) (usecase.LedgerFilter, error) {
	f := usecase.LedgerFilter{
		UserID: c.Query("user_id"),
		Page:   dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
	}
	if f.Page.Limit > 100 {
		f.Page.Limit = 100
	}
	if !isStaffRole(GetRole(c)) {
		f.UserID = GetUserID(c)
	}
	var err error
	if raw := c.Query("from"); raw != "" {
		if f.From, err = time.ParseInLocation(queryDateLayout, raw, h.loc); err != nil {
			return f, err
		}
	}
	if raw := c.Query("to"); raw != "" {
		if f.To, err = time.ParseInLocation(queryDateLayout, raw, h.loc); err != nil {
			return f, err
		}
	}
	return f, nil
}

// Sales godoc
// @Summary      Ventas
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "usuario (solo admin/master)"
// @Param        from     query  string  false  "YYYY-MM-DD inclusive"
// @Param        to       query  string  false  "YYYY-MM-DD inclusive"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *LedgerHandler) Sales(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return validation(c, "from/to deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.Sales(c.UserContext(), GetSession(c).BackendToken, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Movimientos de saldo
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "usuario (solo admin/master)"
// @Param        from     query  string  false  "YYYY-MM-DD inclusive"
// @Param        to       query  string  false  "YYYY-MM-DD inclusive"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *LedgerHandler) Transactions(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return validation(c, "from/to deben tener formato YYYY-MM-DD")
	}
	out, err := h.uc.Transactions(c.UserContext(), GetSession(c).BackendToken, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
