package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// UserChanges campos editables de un usuario; nil = sin cambio.
type UserChanges struct {
	Handle   *string
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Rango    *string
}

// UserRepository usuarios del backend REST. token es el bearer de la sesión.
type UserRepository interface {
	Login(ctx context.Context, email, password string) (token string, user *entity.User, err error)
	Profile(ctx context.Context, token string) (*entity.User, error)
	ListUsers(ctx context.Context, token string) ([]entity.User, error)
	GetUser(ctx context.Context, token, id string) (*entity.User, error)
	CreateUser(ctx context.Context, token string, u *entity.User, password string) (*entity.User, error)
	UpdateUser(ctx context.Context, token, id string, ch UserChanges) (*entity.User, error)
	DeleteUser(ctx context.Context, token, id string) error
	// AdjustBalance suma o resta amount del saldo; op es entity.BalanceAdd o entity.BalanceSubtract.
	AdjustBalance(ctx context.Context, token, id string, amount decimal.Decimal, op string) (*entity.User, error)
}
