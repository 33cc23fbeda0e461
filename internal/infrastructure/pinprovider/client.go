// Package pinprovider cliente HTTP del API externo de venta de pines.
// Cada petición va firmada con pinapi.Signer usando la credencial del usuario de la sesión.
package pinprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// ── Rutas ─────────────────────────────────────────────────────────────────────

const (
	routeAuthorize = "/api/pins/authorize"
	routeCapture   = "/api/pins/capture"
	routeProducts  = "/api/products"
	routeValidate  = "/api/validar/"

	// alerta que devuelve /api/validar cuando el jugador existe
	alertGreen = "green"

	maxErrorBody = 512
)

// ── Cliente ───────────────────────────────────────────────────────────────────

// Client implementa pins.Provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        *logger.Logger
	now        func() time.Time
}

// Option configura el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el http.Client (tests).
func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

// WithMetrics registra las llamadas en Prometheus.
func WithMetrics(m *metrics.Metrics) Option { return func(c *Client) { c.metrics = m } }

// WithClock reemplaza el reloj usado en X-Date.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// NewClient construye el cliente. Sin timeout propio: cada lote del flujo trae su contexto con deadline.
func NewClient(baseURL string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log.Component("pinprovider"),
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ pins.Provider = (*Client)(nil)

// ── Estructuras JSON ──────────────────────────────────────────────────────────

type authorizeBody struct {
	Product     string `json:"product"`
	Quantity    int    `json:"quantity"`
	OrderID     string `json:"order_id"`
	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
}

type authorizeResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

type captureBody struct {
	ID string `json:"id"`
}

type captureResponse struct {
	Status string `json:"status"`
	Pins   []struct {
		Key string `json:"key"`
	} `json:"pins"`
}

type productJSON struct {
	Code      string          `json:"code"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available *bool           `json:"available"`
	Group     string          `json:"product_group"`
}

type validateResponse struct {
	Alerta   string `json:"alerta"`
	Nickname string `json:"Nickname"`
	Mensaje  string `json:"mensaje"`
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// Authorize reserva inventario para un lote.
func (c *Client) Authorize(ctx context.Context, creds pinapi.Credentials, req pins.AuthorizeRequest) (*pins.Authorization, error) {
	var out authorizeResponse
	err := c.do(ctx, "authorize", creds, http.MethodPost, routeAuthorize, authorizeBody{
		Product:     req.Product,
		Quantity:    req.Quantity,
		OrderID:     req.OrderID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	}, &out, func() bool { return out.Status == pins.StatusAuthorized })
	if err != nil {
		return nil, err
	}
	return &pins.Authorization{ID: out.ID, Status: out.Status}, nil
}

// Capture confirma la reserva y devuelve las llaves de los pines en orden.
func (c *Client) Capture(ctx context.Context, creds pinapi.Credentials, authorizationID string) (*pins.Capture, error) {
	var out captureResponse
	err := c.do(ctx, "capture", creds, http.MethodPost, routeCapture, captureBody{ID: authorizationID}, &out,
		func() bool { return out.Status == pins.StatusCaptured })
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(out.Pins))
	for _, p := range out.Pins {
		if p.Key != "" {
			keys = append(keys, p.Key)
		}
	}
	c.metrics.AddPins(len(keys))
	return &pins.Capture{Status: out.Status, Pins: keys}, nil
}

// Products catálogo del proveedor.
func (c *Client) Products(ctx context.Context, creds pinapi.Credentials) ([]entity.Product, error) {
	var out []productJSON
	if err := c.do(ctx, "products", creds, http.MethodGet, routeProducts, nil, &out, nil); err != nil {
		return nil, err
	}
	list := make([]entity.Product, 0, len(out))
	for _, p := range out {
		code := p.Code
		if code == "" {
			code = p.ID
		}
		list = append(list, entity.Product{
			Code:         code,
			Name:         p.Name,
			Price:        p.Price,
			Available:    p.Available == nil || *p.Available,
			ProductGroup: p.Group,
		})
	}
	return list, nil
}

// ValidatePlayer consulta el id de jugador. alerta "green" = válido.
func (c *Client) ValidatePlayer(ctx context.Context, creds pinapi.Credentials, playerID string) (*pins.PlayerValidation, error) {
	var out validateResponse
	route := routeValidate + url.PathEscape(playerID)
	if err := c.do(ctx, "validate", creds, http.MethodGet, route, nil, &out, nil); err != nil {
		return nil, err
	}
	return &pins.PlayerValidation{
		Valid:    out.Alerta == alertGreen,
		Nickname: out.Nickname,
		Message:  out.Mensaje,
	}, nil
}

// ── Transporte ────────────────────────────────────────────────────────────────

// do firma, envía y decodifica. Solo HTTP 200 es éxito; ok valida el cuerpo decodificado.
func (c *Client) do(ctx context.Context, op string, creds pinapi.Credentials, method, route string, body any, out any, ok func() bool) error {
	started := time.Now()

	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return fmt.Errorf("pinprovider: %s: serializar cuerpo: %w", op, err)
		}
	}

	headers, err := pinapi.NewSigner(creds).WithClock(c.now).Headers(method, route, raw)
	if err != nil {
		if errors.Is(err, pinapi.ErrMissingCredentials) {
			return domain.ErrMissingCredentials
		}
		return err
	}

	var reader io.Reader
	if raw != nil {
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		return fmt.Errorf("pinprovider: %s: %w", op, err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveProvider(op, metrics.OutcomeError, started)
		return fmt.Errorf("pinprovider: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ObserveProvider(op, metrics.OutcomeRejected, started)
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warn().Str("operation", op).Int("status", resp.StatusCode).Str("body", string(snippet)).
			Msg("el proveedor rechazó la petición")
		return fmt.Errorf("%w: %s: HTTP %d", domain.ErrProviderRejected, op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.ObserveProvider(op, metrics.OutcomeError, started)
		return fmt.Errorf("pinprovider: %s: respuesta ilegible: %w", op, err)
	}
	if ok != nil && !ok() {
		c.metrics.ObserveProvider(op, metrics.OutcomeRejected, started)
		return fmt.Errorf("%w: %s: estado inesperado", domain.ErrProviderRejected, op)
	}
	c.metrics.ObserveProvider(op, metrics.OutcomeOK, started)
	return nil
}
