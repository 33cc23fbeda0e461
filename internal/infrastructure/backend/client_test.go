package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
	"github.com/jhoicas/pines-admin-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pines-admin-api/pkg/logger"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, metrics.New(""), logger.Nop())
}

func TestLogin_YPerfil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			if in["password"] != "ok" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"credenciales inválidas"}`))
				return
			}
			_, _ = w.Write([]byte(`{"token":"tk","user":{"_id":"u1","handle":"ana","role":"vendedor","saldo":25.5,"rango":"oro"}}`))
		case "/users/profile":
			assert.Equal(t, "Bearer tk", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"_id":"u1","handle":"ana","role":"vendedor","saldo":"30.00"}`))
		}
	})

	tok, u, err := c.Login(context.Background(), "ana@x.co", "ok")
	require.NoError(t, err)
	assert.Equal(t, "tk", tok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "25.5", u.Saldo.String())
	assert.Equal(t, entity.RangoOro, u.Rango)

	_, _, err = c.Login(context.Background(), "ana@x.co", "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "credenciales inválidas")

	p, err := c.Profile(context.Background(), "tk")
	require.NoError(t, err)
	assert.Equal(t, "30", p.Saldo.String())
}

func TestStatus_MapeoDeErrores(t *testing.T) {
	codes := map[string]int{
		"/users/a": http.StatusUnauthorized,
		"/users/b": http.StatusForbidden,
		"/users/c": http.StatusBadRequest,
		"/users/d": http.StatusConflict,
		"/users/e": http.StatusBadGateway,
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(codes[r.URL.Path])
	})
	ctx := context.Background()

	_, err := c.UpdateUser(ctx, "t", "a", repository.UserChanges{})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	_, err = c.UpdateUser(ctx, "t", "b", repository.UserChanges{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = c.UpdateUser(ctx, "t", "c", repository.UserChanges{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = c.UpdateUser(ctx, "t", "d", repository.UserChanges{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = c.UpdateUser(ctx, "t", "e", repository.UserChanges{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestGetUser_NoEncontradoEsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	u, err := c.GetUser(context.Background(), "t", "x")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCreateSale_Solo201EsExito(t *testing.T) {
	status := http.StatusCreated
	var got saleJSON
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sales", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"_id":"s1"}`))
	})

	sale := &entity.Sale{
		Quantity: 2, Product: "FF100", ProductName: "Free Fire - 100 Diamantes",
		Price: decimal.RequireFromString("1.00"), TotalPrice: decimal.RequireFromString("2.00"),
		Status: entity.SaleStatusCompleted, OrderID: "o-1",
		User: entity.UserSnapshot{ID: "u1", Handle: "ana"},
		Pins: []entity.SalePin{{Key: "A"}, {Key: "B"}},
	}
	require.NoError(t, c.CreateSale(context.Background(), "t", sale))
	assert.Equal(t, "s1", sale.ID)
	assert.Equal(t, "o-1", got.OrderID)
	assert.Len(t, got.Pins, 2)
	assert.Equal(t, "", got.Pins[0].Serial)
	assert.Equal(t, "u1", got.User.ID)

	status = http.StatusOK
	assert.Error(t, c.CreateSale(context.Background(), "t", sale))
}

func TestCreateSale_201SinJSONEsExito(t *testing.T) {
	for _, body := range []string{"Created", ""} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(body))
		})
		sale := &entity.Sale{Quantity: 1, Product: "FF100", OrderID: "o-2"}
		require.NoError(t, c.CreateSale(context.Background(), "t", sale), "cuerpo %q", body)
		assert.Empty(t, sale.ID)
	}
}

func TestListSales_EnvueltoYPlano(t *testing.T) {
	wrapped := true
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		row := `{"_id":"s1","quantity":1,"product":"FF100","productName":"Free Fire - 100 Diamantes","totalPrice":1.1,"createdAt":"2026-10-16T12:00:00Z","user":{"_id":"u1"}}`
		if wrapped {
			_, _ = w.Write([]byte(`{"data":[` + row + `]}`))
			return
		}
		_, _ = w.Write([]byte(`[` + row + `]`))
	})

	list, err := c.ListSales(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "u1", list[0].User.ID)
	assert.Equal(t, 2026, list[0].CreatedAt.Year())

	wrapped = false
	list, err = c.ListSales(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestPurchaseLimits_LeerYActualizar(t *testing.T) {
	var stored []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/purchase-limits/v1":
			_, _ = w.Write([]byte(`{"purchaseLimit":[{"name":"FF100","limit":5,"originLimit":20,"price":1}]}`))
		case r.Method == http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut:
			stored, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}
	})

	ls, err := c.GetPurchaseLimits(context.Background(), "t", "v1")
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, 5, ls[0].Limit)

	none, err := c.GetPurchaseLimits(context.Background(), "t", "v2")
	require.NoError(t, err)
	assert.Empty(t, none)

	ls.RestoreAll()
	require.NoError(t, c.UpdatePurchaseLimits(context.Background(), "t", "v1", ls))
	assert.JSONEq(t, `{"purchaseLimit":[{"name":"FF100","limit":20,"originLimit":20,"price":"1"}]}`, string(stored))
}

func TestDelete_Acepta200Y204(t *testing.T) {
	code := http.StatusNoContent
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(code) })
	assert.NoError(t, c.DeleteProduct(context.Background(), "t", "FF100"))
	code = http.StatusOK
	assert.NoError(t, c.DeleteUser(context.Background(), "t", "u1"))
}
