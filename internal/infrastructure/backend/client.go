// Package backend cliente del API REST del negocio: usuarios, saldos, productos, ventas y cupos.
// Todas las llamadas autenticadas van con "Authorization: Bearer <token>" de la sesión.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
)

const maxErrorBody = 512

// Client implementa los repositorios del backend sobre HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
		log:        log.Component("backend"),
	}
}

// errUnreadableBody la respuesta tuvo el código esperado pero su cuerpo no es JSON válido.
var errUnreadableBody = errors.New("respuesta ilegible")

// apiError cuerpo de error del backend.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// call ejecuta la petición. want es el código de éxito esperado (0 = cualquier 2xx); out puede ser nil.
func (c *Client) call(ctx context.Context, op, token, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: %s: serializar cuerpo: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveBackend(op, 0)
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveBackend(op, resp.StatusCode)

	if !success(resp.StatusCode, want) {
		return c.statusError(op, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("backend: %s: %w: %w", op, errUnreadableBody, err)
	}
	return nil
}

func success(status, want int) bool {
	if want == 0 {
		return status >= 200 && status < 300
	}
	return status == want
}

func (c *Client) statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var ae apiError
	_ = json.Unmarshal(raw, &ae)
	msg := ae.Message
	if msg == "" {
		msg = ae.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		base = domain.ErrSessionExpired
	case http.StatusForbidden:
		base = domain.ErrForbidden
	case http.StatusNotFound:
		base = domain.ErrNotFound
	case http.StatusConflict:
		base = domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		base = domain.ErrInvalidInput
	default:
		c.log.Warn().Str("operation", op).Int("status", resp.StatusCode).Str("body", string(raw)).
			Msg("respuesta inesperada del backend")
		return fmt.Errorf("backend: %s: %s", op, msg)
	}
	return fmt.Errorf("%w: %s", base, msg)
}

// decodeList acepta un arreglo JSON o un objeto {"data": [...]}.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	var out []T
	if raw[0] == '[' {
		err := json.Unmarshal(raw, &out)
		return out, err
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Data == nil {
		wrapped.Data = []T{}
	}
	return wrapped.Data, nil
}

func (c *Client) list(ctx context.Context, op, token, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.call(ctx, op, token, http.MethodGet, path, nil, http.StatusOK, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
