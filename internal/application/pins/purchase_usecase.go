package pins

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// SaleRecorder registra la venta en el backend (sales.Recorder).
type SaleRecorder interface {
	Record(ctx context.Context, token string, in sales.SaleInput) (*entity.Sale, error)
}

// Buyer contexto del usuario que compra, tomado de la sesión.
type Buyer struct {
	Token       string
	User        entity.User
	Credentials pinapi.Credentials
}

// PurchaseRequest datos de la compra.
type PurchaseRequest struct {
	ProductCode string
	Quantity    int
	ClientName  string
	ClientEmail string
}

// PurchaseResult resultado de una compra con al menos un pin emitido.
type PurchaseResult struct {
	OrderID      string
	ProductCode  string
	UnitPrice    decimal.Decimal
	TotalPrice   decimal.Decimal // UnitPrice × pines emitidos
	Purchase     *entity.PinPurchase
	Pins         []*entity.Pin
	Sale         *entity.Sale
	Requested    int
	FailedChunks int
	SaleRecorded bool
	// SessionExpired el backend rechazó el token después de emitir los pines.
	SessionExpired bool
	Warnings       []string
}

// Partial indica que se emitieron menos pines de los solicitados.
func (r *PurchaseResult) Partial() bool {
	return len(r.Pins) < r.Requested
}

// PurchaseUseCase orquesta la compra completa: validaciones, flujo con el proveedor,
// diario local, registro de la venta y actualización del cupo.
type PurchaseUseCase struct {
	provider Provider
	backend  Backend
	flow     *AuthorizeCaptureFlow
	journal  JournalTxRunner
	pins     repository.PinRepository
	recorder SaleRecorder
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

// NewPurchaseUseCase construye el caso de uso. notifier puede ser nil.
func NewPurchaseUseCase(
	provider Provider,
	backend Backend,
	flow *AuthorizeCaptureFlow,
	journal JournalTxRunner,
	pins repository.PinRepository,
	recorder SaleRecorder,
	notifier Notifier,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		provider: provider,
		backend:  backend,
		flow:     flow,
		journal:  journal,
		pins:     pins,
		recorder: recorder,
		notifier: notifier,
		log:      log.Component("pins.purchase"),
		now:      time.Now,
	}
}

// Purchase ejecuta la compra.
//
// Antes de llamar al proveedor valida producto disponible, cupo del vendedor y saldo.
// Con cero pines devuelve ErrNoPins y no registra nada. Con al menos un pin el resultado
// nunca es nil, aunque la venta no se haya podido registrar (SaleRecorded=false).
func (uc *PurchaseUseCase) Purchase(ctx context.Context, buyer Buyer, req PurchaseRequest) (*PurchaseResult, error) {
	req.ProductCode = strings.TrimSpace(req.ProductCode)
	if req.ProductCode == "" {
		return nil, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if req.Quantity < 1 || req.Quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: la cantidad debe estar entre 1 y %d", domain.ErrInvalidInput, MaxQuantity)
	}
	if !buyer.Credentials.Complete() {
		return nil, domain.ErrMissingCredentials
	}

	product, err := uc.findProduct(ctx, buyer.Credentials, req.ProductCode)
	if err != nil {
		return nil, err
	}
	uc.applyBackendPrices(ctx, buyer.Token, product)

	user := buyer.User
	if fresh, err := uc.backend.Profile(ctx, buyer.Token); err == nil && fresh != nil {
		user = *fresh
	} else if errors.Is(err, domain.ErrSessionExpired) {
		return nil, err
	}

	var limits entity.PurchaseLimits
	var limit *entity.PurchaseLimit
	if user.Role == entity.RoleVendedor {
		limits, err = uc.backend.GetPurchaseLimits(ctx, buyer.Token, user.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar cupos: %w", err)
		}
		// sin cupo configurado para el producto no hay restricción
		if limit = limits.Find(product); limit != nil && !limit.Allows(req.Quantity) {
			return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrPurchaseLimitExceeded, limit.Limit, req.Quantity)
		}
	}

	unit := product.PriceFor(user.Rango)
	if user.PaysWithBalance() {
		cost := unit.Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2)
		if user.Saldo.LessThan(cost) {
			return nil, fmt.Errorf("%w: saldo %s, costo %s", domain.ErrInsufficientBalance, user.Saldo.StringFixed(2), cost.StringFixed(2))
		}
	}

	flowRes, err := uc.flow.Run(ctx, FlowRequest{
		ProductCode: product.Code,
		Quantity:    req.Quantity,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		Credentials: buyer.Credentials,
	})
	if len(flowRes.Pins) == 0 {
		if err != nil {
			return nil, err
		}
		return nil, domain.ErrNoPins
	}

	res := &PurchaseResult{
		OrderID:      flowRes.OrderID,
		ProductCode:  product.Code,
		UnitPrice:    unit,
		TotalPrice:   unit.Mul(decimal.NewFromInt(int64(len(flowRes.Pins)))).Round(2),
		Requested:    req.Quantity,
		FailedChunks: len(flowRes.Failed()),
	}
	if err != nil {
		res.Warnings = append(res.Warnings, "la compra se detuvo antes de completar todos los lotes")
	}
	if res.FailedChunks > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("se obtuvieron %d de %d pines solicitados", len(flowRes.Pins), req.Quantity))
	}

	if err := uc.journalPins(ctx, res, user, product, unit, flowRes); err != nil {
		// Los pines ya están emitidos: se devuelven aunque el diario falle.
		uc.log.Error().Err(err).Str("order_id", flowRes.OrderID).Strs("pins", flowRes.Pins).
			Msg("no se pudo guardar el diario de pines")
		res.Warnings = append(res.Warnings, "los pines no quedaron guardados en el diario local")
	}

	sale, err := uc.recorder.Record(ctx, buyer.Token, sales.SaleInput{
		Buyer:     &user,
		Product:   product,
		Requested: req.Quantity,
		Pins:      flowRes.Pins,
		OrderID:   flowRes.OrderID,
	})
	res.Sale = sale
	if err != nil {
		res.SessionExpired = errors.Is(err, domain.ErrSessionExpired)
		res.Warnings = append(res.Warnings, "la venta no se registró en el backend; guarde los pines")
	} else {
		res.SaleRecorded = true
		if res.Purchase != nil {
			if err := uc.pins.MarkSaleRecorded(ctx, res.Purchase.ID); err != nil {
				uc.log.Warn().Err(err).Str("purchase_id", res.Purchase.ID).Msg("no se pudo marcar la venta en el diario")
			} else {
				res.Purchase.SaleRecorded = true
			}
		}
	}

	switch {
	case limit == nil:
	case res.SessionExpired:
		// con el token vencido el backend también rechazaría el cupo
		uc.log.Warn().Str("seller_id", user.ID).Str("order_id", res.OrderID).Int("pins", len(flowRes.Pins)).
			Msg("sesión vencida: cupo sin actualizar")
		res.Warnings = append(res.Warnings, "no se pudo actualizar el cupo de compra")
	default:
		limit.Consume(len(flowRes.Pins))
		if err := uc.backend.UpdatePurchaseLimits(ctx, buyer.Token, user.ID, limits); err != nil {
			res.SessionExpired = errors.Is(err, domain.ErrSessionExpired)
			uc.log.Error().Err(err).Str("seller_id", user.ID).Msg("no se pudo actualizar el cupo del vendedor")
			res.Warnings = append(res.Warnings, "no se pudo actualizar el cupo de compra")
		}
	}

	if uc.notifier != nil {
		uc.notifier.PinsIssued(user.ID, res.OrderID, len(res.Pins))
		uc.notifier.BalanceChanged(user.ID)
	}
	return res, nil
}

// Catalog productos del proveedor para las credenciales del comprador.
func (uc *PurchaseUseCase) Catalog(ctx context.Context, creds pinapi.Credentials) ([]entity.Product, error) {
	if !creds.Complete() {
		return nil, domain.ErrMissingCredentials
	}
	return uc.provider.Products(ctx, creds)
}

// ValidatePlayer consulta el nickname de un jugador en el proveedor.
func (uc *PurchaseUseCase) ValidatePlayer(ctx context.Context, creds pinapi.Credentials, playerID string) (*PlayerValidation, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return nil, fmt.Errorf("%w: id de jugador requerido", domain.ErrInvalidInput)
	}
	if !creds.Complete() {
		return nil, domain.ErrMissingCredentials
	}
	return uc.provider.ValidatePlayer(ctx, creds, playerID)
}

func (uc *PurchaseUseCase) findProduct(ctx context.Context, creds pinapi.Credentials, code string) (*entity.Product, error) {
	list, err := uc.provider.Products(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("consultar catálogo: %w", err)
	}
	for i := range list {
		if list[i].Code == code {
			if !list[i].Available {
				return nil, fmt.Errorf("%w: %s", domain.ErrProductUnavailable, code)
			}
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
}

// applyBackendPrices toma los precios por rango del producto homónimo del backend.
// El catálogo del proveedor solo trae precio base.
func (uc *PurchaseUseCase) applyBackendPrices(ctx context.Context, token string, p *entity.Product) {
	list, err := uc.backend.ListProducts(ctx, token)
	if err != nil {
		uc.log.Warn().Err(err).Str("product", p.Code).Msg("sin precios del backend; se usa el precio del proveedor")
		return
	}
	for i := range list {
		if list[i].Code != p.Code {
			continue
		}
		if list[i].Price.IsPositive() {
			p.Price = list[i].Price
		}
		p.PriceOro = list[i].PriceOro
		p.PricePlata = list[i].PricePlata
		p.PriceBronce = list[i].PriceBronce
		return
	}
}

func (uc *PurchaseUseCase) journalPins(ctx context.Context, res *PurchaseResult, user entity.User, product *entity.Product, unit decimal.Decimal, flowRes *FlowResult) error {
	now := uc.now().UTC()
	issued := len(flowRes.Pins)
	purchase := &entity.PinPurchase{
		ID:          uuid.NewString(),
		OrderID:     flowRes.OrderID,
		UserID:      user.ID,
		ProductCode: product.Code,
		ProductName: product.Name,
		Requested:   flowRes.Requested,
		Issued:      issued,
		UnitPrice:   unit,
		TotalPrice:  unit.Mul(decimal.NewFromInt(int64(issued))).Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	pins := make([]*entity.Pin, 0, issued)
	for _, key := range flowRes.Pins {
		pins = append(pins, &entity.Pin{
			ID:          uuid.NewString(),
			PurchaseID:  purchase.ID,
			OwnerID:     user.ID,
			ProductCode: product.Code,
			ProductName: product.Name,
			Key:         key,
			CreatedAt:   now,
		})
	}

	res.Pins = pins

	err := uc.journal.RunJournal(ctx, func(repo repository.PinRepository) error {
		if err := repo.CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		return repo.CreatePins(ctx, pins)
	})
	if err != nil {
		return err
	}
	res.Purchase = purchase
	return nil
}
