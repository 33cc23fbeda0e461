// Package pins orquesta la compra de pines al proveedor externo.
//
// Protocolo en dos fases por lote:
//
//	authorize (reserva inventario) → capture (confirma y revela los pines)
//
// Los lotes son de máximo 10 unidades y se ejecutan uno tras otro, nunca en paralelo:
// cada authorize reserva inventario en el proveedor y debe capturarse antes del siguiente.
package pins

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

const (
	// MaxChunkSize unidades máximas por llamada authorize.
	MaxChunkSize = 10
	// MaxQuantity unidades máximas por compra.
	MaxQuantity = 100

	defaultChunkTimeout = 20 * time.Second
)

// FaultPolicy qué hacer cuando falla un lote.
type FaultPolicy string

const (
	// FaultPolicyBestEffort registra el fallo y sigue con el siguiente lote (por defecto).
	FaultPolicyBestEffort FaultPolicy = "best-effort"
	// FaultPolicyFailFast detiene la compra en el primer lote fallido.
	FaultPolicyFailFast FaultPolicy = "fail-fast"
)

// ParseFaultPolicy convierte el valor de configuración; vacío = best-effort.
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch FaultPolicy(s) {
	case "", FaultPolicyBestEffort:
		return FaultPolicyBestEffort, nil
	case FaultPolicyFailFast:
		return FaultPolicyFailFast, nil
	}
	return "", fmt.Errorf("%w: política de fallos desconocida %q", domain.ErrInvalidInput, s)
}

// FlowConfig parámetros del flujo.
type FlowConfig struct {
	ChunkTimeout time.Duration // timeout de authorize + capture de un lote
	Policy       FaultPolicy
}

// Chunks parte quantity en lotes de máximo MaxChunkSize; el último lleva el residuo.
// 23 → [10 10 3], 30 → [10 10 10].
func Chunks(quantity int) []int {
	if quantity <= 0 {
		return nil
	}
	n := quantity / MaxChunkSize
	rem := quantity % MaxChunkSize
	out := make([]int, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, MaxChunkSize)
	}
	if rem > 0 {
		out = append(out, rem)
	}
	return out
}

// FlowRequest entrada del flujo.
type FlowRequest struct {
	ProductCode string
	Quantity    int
	ClientName  string
	ClientEmail string
	Credentials pinapi.Credentials
	// OnChunk se invoca al terminar cada lote (éxito o fallo).
	OnChunk func(ChunkResult)
}

// ChunkResult resultado de un lote.
type ChunkResult struct {
	Index           int
	Size            int
	OrderID         string
	AuthorizationID string
	Pins            int
	Err             error
}

// FlowResult pines obtenidos. Puede traer menos de Requested: el caller debe comparar.
type FlowResult struct {
	OrderID   string
	Requested int
	Pins      []string
	Chunks    []ChunkResult
}

// Complete indica si se obtuvieron todos los pines pedidos.
func (r *FlowResult) Complete() bool {
	return len(r.Pins) == r.Requested
}

// Failed lotes que no aportaron pines.
func (r *FlowResult) Failed() []ChunkResult {
	var out []ChunkResult
	for _, c := range r.Chunks {
		if c.Err != nil {
			out = append(out, c)
		}
	}
	return out
}

// AuthorizeCaptureFlow ejecuta authorize → capture por lote contra el proveedor.
// No reintenta: cada lote exitoso hace exactamente un authorize y un capture.
type AuthorizeCaptureFlow struct {
	provider   Provider
	cfg        FlowConfig
	log        *logger.Logger
	newOrderID func() string
}

// NewAuthorizeCaptureFlow construye el flujo.
func NewAuthorizeCaptureFlow(provider Provider, cfg FlowConfig, log *logger.Logger) *AuthorizeCaptureFlow {
	if cfg.ChunkTimeout <= 0 {
		cfg.ChunkTimeout = defaultChunkTimeout
	}
	if cfg.Policy == "" {
		cfg.Policy = FaultPolicyBestEffort
	}
	return &AuthorizeCaptureFlow{
		provider:   provider,
		cfg:        cfg,
		log:        log.Component("pins.flow"),
		newOrderID: uuid.NewString,
	}
}

// Policy política de fallos configurada.
func (f *AuthorizeCaptureFlow) Policy() FaultPolicy { return f.cfg.Policy }

// Run ejecuta la compra. Siempre devuelve un FlowResult (nunca nil) con los pines obtenidos.
//
// Errores:
//   - domain.ErrInvalidInput: quantity fuera de [1, MaxQuantity]; no se llama al proveedor.
//   - domain.ErrMissingCredentials: falta apiKey o apiSecret; no se llama al proveedor.
//   - domain.ErrProviderRejected: solo con FaultPolicyFailFast, al fallar un lote.
//   - ctx.Err(): el contexto padre se canceló entre lotes.
//
// Con FaultPolicyBestEffort los lotes fallidos no producen error: quedan en FlowResult.Chunks.
func (f *AuthorizeCaptureFlow) Run(ctx context.Context, req FlowRequest) (*FlowResult, error) {
	res := &FlowResult{Requested: req.Quantity, Pins: []string{}}
	if req.Quantity < 1 || req.Quantity > MaxQuantity {
		return res, fmt.Errorf("%w: la cantidad debe estar entre 1 y %d", domain.ErrInvalidInput, MaxQuantity)
	}
	if req.ProductCode == "" {
		return res, fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if !req.Credentials.Complete() {
		f.log.Warn().Str("product", req.ProductCode).Msg("compra abortada: faltan credenciales del proveedor")
		return res, domain.ErrMissingCredentials
	}

	res.OrderID = f.newOrderID()
	for i, size := range Chunks(req.Quantity) {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("pins: compra interrumpida en el lote %d: %w", i, err)
		}

		chunk := f.runChunk(ctx, req, res.OrderID, i, size)
		res.Chunks = append(res.Chunks, chunk.ChunkResult)
		res.Pins = append(res.Pins, chunk.pins...)
		if req.OnChunk != nil {
			req.OnChunk(chunk.ChunkResult)
		}

		if chunk.Err != nil {
			f.log.Error().Err(chunk.Err).
				Str("order_id", chunk.OrderID).
				Int("chunk", i).
				Int("size", size).
				Msg("lote de pines fallido")
			if f.cfg.Policy == FaultPolicyFailFast {
				return res, fmt.Errorf("pins: lote %d: %w", i, chunk.Err)
			}
		}
	}

	lg := f.log.Info()
	if !res.Complete() {
		lg = f.log.Warn()
	}
	lg.Str("order_id", res.OrderID).
		Str("product", req.ProductCode).
		Int("requested", res.Requested).
		Int("pins", len(res.Pins)).
		Msg("compra de pines finalizada")
	return res, nil
}

type chunkOutcome struct {
	ChunkResult
	pins []string
}

func (f *AuthorizeCaptureFlow) runChunk(parent context.Context, req FlowRequest, baseOrderID string, index, size int) chunkOutcome {
	out := chunkOutcome{ChunkResult: ChunkResult{
		Index:   index,
		Size:    size,
		OrderID: baseOrderID + "-" + strconv.Itoa(index),
	}}

	ctx, cancel := context.WithTimeout(parent, f.cfg.ChunkTimeout)
	defer cancel()

	auth, err := f.provider.Authorize(ctx, req.Credentials, AuthorizeRequest{
		Product:     req.ProductCode,
		Quantity:    size,
		OrderID:     out.OrderID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	})
	if err != nil {
		out.Err = providerErr("authorize", err)
		return out
	}
	if auth.Status != StatusAuthorized || auth.ID == "" {
		out.Err = fmt.Errorf("%w: authorize devolvió estado %q", domain.ErrProviderRejected, auth.Status)
		return out
	}
	out.AuthorizationID = auth.ID

	capture, err := f.provider.Capture(ctx, req.Credentials, auth.ID)
	if err != nil {
		// La reserva queda en estado desconocido en el proveedor: no existe operación de liberación.
		out.Err = providerErr("capture", err)
		return out
	}
	if capture.Status != StatusCaptured {
		out.Err = fmt.Errorf("%w: capture devolvió estado %q", domain.ErrProviderRejected, capture.Status)
		return out
	}

	out.pins = capture.Pins
	out.Pins = len(capture.Pins)
	return out
}

func providerErr(op string, err error) error {
	if errors.Is(err, domain.ErrProviderRejected) || errors.Is(err, domain.ErrMissingCredentials) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrProviderRejected, op, err)
}
