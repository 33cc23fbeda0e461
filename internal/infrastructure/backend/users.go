package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

var _ repository.UserRepository = (*Client)(nil)

// Login POST /auth/login. Un 401 aquí son credenciales incorrectas, no sesión vencida.
func (c *Client) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	var out struct {
		Token string   `json:"token"`
		User  userJSON `json:"user"`
	}
	in := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, "auth.login", "", http.MethodPost, "/auth/login", in, http.StatusOK, &out); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return "", nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, strings.TrimPrefix(err.Error(), domain.ErrSessionExpired.Error()+": "))
		}
		return "", nil, err
	}
	if out.Token == "" {
		return "", nil, domain.ErrUnauthorized
	}
	u := out.User.toEntity()
	return out.Token, &u, nil
}

// Profile GET /users/profile.
func (c *Client) Profile(ctx context.Context, token string) (*entity.User, error) {
	var out userJSON
	if err := c.call(ctx, "users.profile", token, http.MethodGet, "/users/profile", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// ListUsers GET /users.
func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	raw, err := c.list(ctx, "users.list", token, "/users")
	if err != nil {
		return nil, err
	}
	items, err := decodeList[userJSON](raw)
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(items))
	for _, u := range items {
		out = append(out, u.toEntity())
	}
	return out, nil
}

// GetUser GET /users/{id}. Devuelve nil, nil si no existe.
func (c *Client) GetUser(ctx context.Context, token, id string) (*entity.User, error) {
	var out userJSON
	err := c.call(ctx, "users.get", token, http.MethodGet, "/users/"+url.PathEscape(id), nil, http.StatusOK, &out)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// CreateUser POST /users.
func (c *Client) CreateUser(ctx context.Context, token string, u *entity.User, password string) (*entity.User, error) {
	in := struct {
		userJSON
		Password string `json:"password"`
	}{
		userJSON: userJSON{Handle: u.Handle, Name: u.Name, Email: u.Email, Role: u.Role, Saldo: decimal.Zero, Rango: u.Rango},
		Password: password,
	}
	var out userJSON
	if err := c.call(ctx, "users.create", token, http.MethodPost, "/users", in, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	created := out.toEntity()
	return &created, nil
}

// UpdateUser PUT /users/{id} con solo los campos presentes.
func (c *Client) UpdateUser(ctx context.Context, token, id string, ch repository.UserChanges) (*entity.User, error) {
	in := map[string]string{}
	set := func(k string, v *string) {
		if v != nil {
			in[k] = *v
		}
	}
	set("handle", ch.Handle)
	set("name", ch.Name)
	set("email", ch.Email)
	set("password", ch.Password)
	set("role", ch.Role)
	set("rango", ch.Rango)

	var out userJSON
	if err := c.call(ctx, "users.update", token, http.MethodPut, "/users/"+url.PathEscape(id), in, http.StatusOK, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}

// DeleteUser DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.callAny(ctx, "users.delete", token, http.MethodDelete, "/users/"+url.PathEscape(id))
}

// AdjustBalance POST /users/{id}/balance.
func (c *Client) AdjustBalance(ctx context.Context, token, id string, amount decimal.Decimal, op string) (*entity.User, error) {
	in := struct {
		Amount    decimal.Decimal `json:"amount"`
		Operation string          `json:"operation"`
	}{amount, op}
	var out userJSON
	if err := c.call(ctx, "users.balance", token, http.MethodPost, "/users/"+url.PathEscape(id)+"/balance", in, http.StatusOK, &out); err != nil {
		return nil, err
	}
	u := out.toEntity()
	return &u, nil
}
