package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/application/sales"
	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
	apphttp "github.com/jhoicas/pines-admin-api/internal/interfaces/http"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// pinProvider emite un pin por unidad autorizada.
type pinProvider struct {
	pending map[string]int
	seq     int
}

func (p *pinProvider) Authorize(_ context.Context, _ pinapi.Credentials, req pins.AuthorizeRequest) (*pins.Authorization, error) {
	p.pending[req.OrderID] = req.Quantity
	return &pins.Authorization{ID: req.OrderID, Status: pins.StatusAuthorized}, nil
}

func (p *pinProvider) Capture(_ context.Context, _ pinapi.Credentials, id string) (*pins.Capture, error) {
	out := make([]string, 0, p.pending[id])
	for i := 0; i < p.pending[id]; i++ {
		p.seq++
		out = append(out, fmt.Sprintf("PIN-%03d", p.seq))
	}
	return &pins.Capture{Status: pins.StatusCaptured, Pins: out}, nil
}

func (p *pinProvider) Products(context.Context, pinapi.Credentials) ([]entity.Product, error) {
	return []entity.Product{{Code: "FF100", Name: "Free Fire - 100 Diamantes", Price: decimal.RequireFromString("1.00"), Available: true}}, nil
}

func (p *pinProvider) ValidatePlayer(context.Context, pinapi.Credentials, string) (*pins.PlayerValidation, error) {
	return &pins.PlayerValidation{Valid: true}, nil
}

type pinBackend struct{ user entity.User }

func (b *pinBackend) Profile(context.Context, string) (*entity.User, error) { return &b.user, nil }
func (b *pinBackend) ListProducts(context.Context, string) ([]entity.Product, error) {
	return nil, nil
}
func (b *pinBackend) GetPurchaseLimits(context.Context, string, string) (entity.PurchaseLimits, error) {
	return nil, nil
}
func (b *pinBackend) UpdatePurchaseLimits(context.Context, string, string, entity.PurchaseLimits) error {
	return nil
}

// pinJournal diario en memoria sin transacción.
type pinJournal struct{}

func (j pinJournal) RunJournal(_ context.Context, fn func(repo repository.PinRepository) error) error {
	return fn(j)
}
func (pinJournal) CreatePurchase(context.Context, *entity.PinPurchase) error { return nil }
func (pinJournal) CreatePins(context.Context, []*entity.Pin) error { return nil }
func (pinJournal) MarkSaleRecorded(context.Context, string) error { return nil }
func (pinJournal) GetByID(context.Context, string) (*entity.Pin, error) { return nil, nil }
func (pinJournal) List(context.Context, repository.PinFilter) ([]*entity.Pin, error) {
	return nil, nil
}
func (pinJournal) MarkUsed(context.Context, string, time.Time) (bool, error) { return false, nil }

type expiredRecorder struct{}

func (expiredRecorder) Record(context.Context, string, sales.SaleInput) (*entity.Sale, error) {
	return nil, fmt.Errorf("%w: %w", domain.ErrSaleNotRecorded, domain.ErrSessionExpired)
}

func buildPinApp(store *session.Store, recorder pins.SaleRecorder) *fiber.App {
	provider := &pinProvider{pending: map[string]int{}}
	backend := &pinBackend{user: entity.User{ID: testUserID, Role: entity.RoleAdmin}}
	flow := pins.NewAuthorizeCaptureFlow(provider, pins.FlowConfig{}, logger.Nop())
	uc := pins.NewPurchaseUseCase(provider, backend, flow, pinJournal{}, pinJournal{}, recorder, nil, logger.Nop())
	h := apphttp.NewPinHandler(uc, pins.NewInventoryUseCase(pinJournal{}), store)

	app := fiber.New()
	app.Post("/api/pins/purchase", apphttp.AuthMiddleware(testJWTSecret, store), h.Purchase)
	return app
}

func TestPinPurchase_SesionVencidaEntregaPinesYCierraSesion(t *testing.T) {
	store := newSessions()
	app := buildPinApp(store, expiredRecorder{})
	tok := tokenForRole(t, store, entity.RoleAdmin)
	require.Equal(t, 1, store.Len())

	req := httptest.NewRequest(http.MethodPost, "/api/pins/purchase", strings.NewReader(`{"product":"FF100","quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMultiStatus, resp.StatusCode)
	var out dto.PurchasePinsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Pins, 3)
	assert.False(t, out.SaleRecorded)
	assert.Equal(t, 0, store.Len())
}
