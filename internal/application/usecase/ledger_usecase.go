package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

// LedgerFilter filtros comunes de ventas y movimientos. Fechas inclusivas; cero = sin límite.
type LedgerFilter struct {
	UserID string
	From   time.Time
	To     time.Time
	Page   dto.PageRequest
}

func (f LedgerFilter) match(userID string, at time.Time) bool {
	if f.UserID != "" && userID != f.UserID {
		return false
	}
	if !f.From.IsZero() && at.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !at.Before(f.To.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

// LedgerUseCase listados de ventas y movimientos de saldo, más recientes primero.
type LedgerUseCase struct {
	sales repository.SaleRepository
	txs   repository.TransactionRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(sales repository.SaleRepository, txs repository.TransactionRepository) *LedgerUseCase {
	return &LedgerUseCase{sales: sales, txs: txs}
}

// Sales ventas filtradas.
func (uc *LedgerUseCase) Sales(ctx context.Context, token string, f LedgerFilter) (*dto.SaleListResponse, error) {
	list, err := uc.sales.ListSales(ctx, token)
	if err != nil {
		return nil, err
	}
	filtered := make([]entity.Sale, 0, len(list))
	for _, s := range list {
		if f.match(s.User.ID, s.CreatedAt) {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })

	f.Page.DefaultPage()
	out := &dto.SaleListResponse{
		Items: []dto.SaleResponse{},
		Page:  dto.PageResponse{Limit: f.Page.Limit, Offset: f.Page.Offset, Total: len(filtered)},
	}
	for _, s := range paginate(filtered, f.Page) {
		out.Items = append(out.Items, toSaleResponse(&s))
	}
	return out, nil
}

// Transactions movimientos de saldo filtrados.
func (uc *LedgerUseCase) Transactions(ctx context.Context, token string, f LedgerFilter) (*dto.TransactionListResponse, error) {
	list, err := uc.txs.ListTransactions(ctx, token)
	if err != nil {
		return nil, err
	}
	filtered := make([]entity.Transaction, 0, len(list))
	for _, t := range list {
		if f.match(t.UserID, t.CreatedAt) {
			filtered = append(filtered, t)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })

	f.Page.DefaultPage()
	out := &dto.TransactionListResponse{
		Items: []dto.TransactionResponse{},
		Page:  dto.PageResponse{Limit: f.Page.Limit, Offset: f.Page.Offset, Total: len(filtered)},
	}
	for _, t := range paginate(filtered, f.Page) {
		out.Items = append(out.Items, dto.TransactionResponse{
			ID: t.ID, UserID: t.UserID, Type: t.Type, Amount: t.Amount,
			Description: t.Description, CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}
