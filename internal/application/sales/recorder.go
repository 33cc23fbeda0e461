// Package sales registra ventas en el backend y arma los reportes de ventas.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
)

// SaleSink puerto hacia POST /sales del backend. Solo HTTP 201 cuenta como éxito.
type SaleSink interface {
	CreateSale(ctx context.Context, token string, sale *entity.Sale) error
}

// SaleInput datos de una compra completada.
type SaleInput struct {
	Buyer     *entity.User
	Product   *entity.Product
	Requested int
	Pins      []string
	OrderID   string
}

// Recorder construye y envía el registro de venta.
type Recorder struct {
	sink SaleSink
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder crea el registrador.
func NewRecorder(sink SaleSink, log *logger.Logger) *Recorder {
	return &Recorder{sink: sink, log: log.Component("sales.recorder"), now: time.Now}
}

// BuildSale arma la venta. La cantidad registrada es siempre len(Pins).
func (r *Recorder) BuildSale(in SaleInput) *entity.Sale {
	qty := len(in.Pins)
	if qty != in.Requested {
		r.log.Warn().
			Str("order_id", in.OrderID).
			Str("product", in.Product.Code).
			Int("requested", in.Requested).
			Int("pins", qty).
			Msg("pines obtenidos distintos a los solicitados; se registra la cantidad real")
	}

	price := in.Product.PriceFor(in.Buyer.Rango)
	q := decimal.NewFromInt(int64(qty))

	pins := make([]entity.SalePin, 0, qty)
	for _, key := range in.Pins {
		pins = append(pins, entity.SalePin{Serial: "", Key: key})
	}

	return &entity.Sale{
		Quantity:           qty,
		Product:            in.Product.Code,
		ProductName:        in.Product.Name,
		Price:              price,
		TotalPrice:         price.Mul(q).Round(2),
		TotalOriginalPrice: in.Product.Price.Mul(q).Round(2),
		Status:             entity.SaleStatusCompleted,
		OrderID:            in.OrderID,
		User:               entity.SnapshotOf(in.Buyer),
		Pins:               pins,
		CreatedAt:          r.now(),
	}
}

// Record construye la venta y la envía al backend una sola vez.
// Si el backend no confirma devuelve la venta construida junto con ErrSaleNotRecorded:
// los pines ya emitidos no se descartan.
func (r *Recorder) Record(ctx context.Context, token string, in SaleInput) (*entity.Sale, error) {
	if in.Buyer == nil || in.Product == nil {
		return nil, fmt.Errorf("%w: comprador y producto requeridos", domain.ErrInvalidInput)
	}
	if len(in.Pins) == 0 {
		return nil, domain.ErrNoPins
	}

	sale := r.BuildSale(in)
	if err := r.sink.CreateSale(ctx, token, sale); err != nil {
		r.log.Error().Err(err).
			Str("order_id", in.OrderID).
			Int("pins", sale.Quantity).
			Msg("no se pudo registrar la venta")
		return sale, fmt.Errorf("%w: %w", domain.ErrSaleNotRecorded, err)
	}

	r.log.Info().
		Str("order_id", in.OrderID).
		Str("product", sale.Product).
		Int("pins", sale.Quantity).
		Str("total", sale.TotalPrice.StringFixed(2)).
		Msg("venta registrada")
	return sale, nil
}
