package pins

import (
	"context"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// Estados que devuelve el proveedor en una respuesta exitosa.
const (
	StatusAuthorized = "authorized"
	StatusCaptured   = "captured"
)

// AuthorizeRequest cuerpo de POST /api/pins/authorize.
type AuthorizeRequest struct {
	Product     string
	Quantity    int
	OrderID     string
	ClientName  string
	ClientEmail string
}

// Authorization respuesta del authorize (HTTP 200).
type Authorization struct {
	ID     string
	Status string
}

// Capture respuesta del capture (HTTP 200).
type Capture struct {
	Status string
	Pins   []string
}

// PlayerValidation respuesta de GET /api/validar/{playerId}.
type PlayerValidation struct {
	Valid    bool
	Nickname string
	Message  string
}

// Provider puerto de salida hacia el API externo de venta de pines.
// Cualquier respuesta distinta de HTTP 200 o fallo de red se devuelve como error.
type Provider interface {
	Authorize(ctx context.Context, creds pinapi.Credentials, req AuthorizeRequest) (*Authorization, error)
	Capture(ctx context.Context, creds pinapi.Credentials, authorizationID string) (*Capture, error)
	Products(ctx context.Context, creds pinapi.Credentials) ([]entity.Product, error)
	ValidatePlayer(ctx context.Context, creds pinapi.Credentials, playerID string) (*PlayerValidation, error)
}

// Backend operaciones del backend REST que necesita la compra.
type Backend interface {
	Profile(ctx context.Context, token string) (*entity.User, error)
	// ListProducts productos del backend: fuente de los precios por rango.
	ListProducts(ctx context.Context, token string) ([]entity.Product, error)
	GetPurchaseLimits(ctx context.Context, token, sellerID string) (entity.PurchaseLimits, error)
	UpdatePurchaseLimits(ctx context.Context, token, sellerID string, limits entity.PurchaseLimits) error
}

// JournalTxRunner ejecuta fn en una transacción con el repositorio de pines atado a ella.
type JournalTxRunner interface {
	RunJournal(ctx context.Context, fn func(repo repository.PinRepository) error) error
}

// Notifier avisa a los clientes suscritos de pines emitidos y cambios de saldo.
type Notifier interface {
	PinsIssued(userID, orderID string, count int)
	BalanceChanged(userID string)
}
