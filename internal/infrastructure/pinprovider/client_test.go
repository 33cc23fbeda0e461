package pinprovider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

var (
	creds   = pinapi.Credentials{APIKey: "key-1", APISecret: "s3cr3t"}
	fixedTS = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
)

// providerStub simula el proveedor y verifica la firma de cada petición.
type providerStub struct {
	t         *testing.T
	mu        sync.Mutex
	paths     []string
	failPaths map[string]int
	captured  map[string]int
}

func (s *providerStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.paths = append(s.paths, r.URL.Path)
	s.mu.Unlock()

	assert.Equal(s.t, "2026-10-16T12:00:00.000Z", r.Header.Get("X-Date"))
	want := "key-1:" + pinapi.Sign("s3cr3t", r.Method, r.URL.Path, r.Header.Get("X-Date"), string(body))
	if r.Header.Get("Authorization") != want {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if code, ok := s.failPaths[r.URL.Path]; ok {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"error":"fallo"}`))
		return
	}

	switch {
	case r.URL.Path == "/api/pins/authorize":
		var in authorizeBody
		require.NoError(s.t, json.Unmarshal(body, &in))
		s.mu.Lock()
		s.captured[in.OrderID] = in.Quantity
		s.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "authorized", "id": in.OrderID})
	case r.URL.Path == "/api/pins/capture":
		var in captureBody
		require.NoError(s.t, json.Unmarshal(body, &in))
		s.mu.Lock()
		n := s.captured[in.ID]
		s.mu.Unlock()
		type pin struct {
			Key string `json:"key"`
		}
		out := struct {
			Status string `json:"status"`
			Pins   []pin  `json:"pins"`
		}{Status: "captured"}
		for i := 0; i < n; i++ {
			out.Pins = append(out.Pins, pin{Key: in.ID + "-" + string(rune('a'+i))})
		}
		_ = json.NewEncoder(w).Encode(out)
	case r.URL.Path == "/api/products":
		_, _ = w.Write([]byte(`[{"code":"FF100","name":"Free Fire - 100 Diamantes","price":1.1,"available":true},{"id":"FF520","name":"Free Fire - 520 Diamantes","price":"5.00","available":false}]`))
	case strings.HasPrefix(r.URL.Path, "/api/validar/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/validar/")
		if id == "123" {
			_, _ = w.Write([]byte(`{"alerta":"green","Nickname":"ProGamer"}`))
			return
		}
		_, _ = w.Write([]byte(`{"alerta":"red","mensaje":"jugador no encontrado"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newStub(t *testing.T) (*providerStub, *Client, *metrics.Metrics) {
	stub := &providerStub{t: t, failPaths: map[string]int{}, captured: map[string]int{}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	m := metrics.New("")
	c := NewClient(srv.URL+"/", logger.Nop(), WithMetrics(m), WithClock(func() time.Time { return fixedTS }))
	return stub, c, m
}

func TestAuthorizeCapture_Firmado(t *testing.T) {
	_, c, m := newStub(t)

	auth, err := c.Authorize(context.Background(), creds, pins.AuthorizeRequest{Product: "FF100", Quantity: 3, OrderID: "o-0"})
	require.NoError(t, err)
	assert.Equal(t, "o-0", auth.ID)
	assert.Equal(t, pins.StatusAuthorized, auth.Status)

	capture, err := c.Capture(context.Background(), creds, auth.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"o-0-a", "o-0-b", "o-0-c"}, capture.Pins)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.PinsIssued))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls.WithLabelValues("authorize", metrics.OutcomeOK)))
}

func TestFlow_ContraProveedorHTTP(t *testing.T) {
	stub, c, _ := newStub(t)
	flow := pins.NewAuthorizeCaptureFlow(c, pins.FlowConfig{ChunkTimeout: 5 * time.Second}, logger.Nop())

	res, err := flow.Run(context.Background(), pins.FlowRequest{ProductCode: "FF100", Quantity: 23, Credentials: creds})
	require.NoError(t, err)
	assert.Len(t, res.Pins, 23)
	assert.Equal(t, []string{
		"/api/pins/authorize", "/api/pins/capture",
		"/api/pins/authorize", "/api/pins/capture",
		"/api/pins/authorize", "/api/pins/capture",
	}, stub.paths)
}

func TestRespuestaNo200_Rechazada(t *testing.T) {
	stub, c, m := newStub(t)
	stub.failPaths["/api/pins/capture"] = http.StatusInternalServerError

	_, err := c.Capture(context.Background(), creds, "x")
	require.ErrorIs(t, err, domain.ErrProviderRejected)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderCalls.WithLabelValues("capture", metrics.OutcomeRejected)))
}

func TestSecretoIncorrecto_Rechazado(t *testing.T) {
	_, c, _ := newStub(t)
	_, err := c.Authorize(context.Background(), pinapi.Credentials{APIKey: "key-1", APISecret: "otro"},
		pins.AuthorizeRequest{Product: "FF100", Quantity: 1, OrderID: "o"})
	assert.ErrorIs(t, err, domain.ErrProviderRejected)
}

func TestSinCredenciales_NoLlama(t *testing.T) {
	stub, c, _ := newStub(t)
	_, err := c.Products(context.Background(), pinapi.Credentials{APIKey: "key-1"})
	require.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Empty(t, stub.paths)
}

func TestProducts_Catalogo(t *testing.T) {
	_, c, _ := newStub(t)
	list, err := c.Products(context.Background(), creds)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "FF100", list[0].Code)
	assert.True(t, list[0].Available)
	assert.Equal(t, "1.1", list[0].Price.String())
	assert.Equal(t, "FF520", list[1].Code)
	assert.False(t, list[1].Available)
}

func TestValidatePlayer_Nickname(t *testing.T) {
	_, c, _ := newStub(t)

	v, err := c.ValidatePlayer(context.Background(), creds, "123")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, "ProGamer", v.Nickname)

	v, err = c.ValidatePlayer(context.Background(), creds, "999")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Equal(t, "jugador no encontrado", v.Message)
}
