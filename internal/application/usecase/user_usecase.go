package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

// BalanceNotifier avisa cambios de saldo a los clientes suscritos.
type BalanceNotifier interface {
	BalanceChanged(userID string)
}

// UserUseCase pantallas de clientes, administradores y vendedores sobre el backend.
type UserUseCase struct {
	repo     repository.UserRepository
	notifier BalanceNotifier
}

// NewUserUseCase construye el caso de uso. notifier puede ser nil.
func NewUserUseCase(repo repository.UserRepository, notifier BalanceNotifier) *UserUseCase {
	return &UserUseCase{repo: repo, notifier: notifier}
}

// List usuarios, opcionalmente filtrados por rol, ordenados por handle.
func (uc *UserUseCase) List(ctx context.Context, token, role string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if role != "" && !entity.IsValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}
	list, err := uc.repo.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}
	filtered := make([]entity.User, 0, len(list))
	for _, u := range list {
		if role == "" || u.Role == role {
			filtered = append(filtered, u)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Handle < filtered[j].Handle })

	page.DefaultPage()
	out := &dto.UserListResponse{
		Items: []dto.UserResponse{},
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	}
	for _, u := range paginate(filtered, page) {
		out.Items = append(out.Items, ToUserResponse(&u))
	}
	return out, nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, token, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetUser(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	out := ToUserResponse(u)
	return &out, nil
}

// Create da de alta un usuario. El saldo inicial lo fija el backend.
func (uc *UserUseCase) Create(ctx context.Context, token string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Handle = strings.TrimSpace(in.Handle)
	if in.Email == "" || in.Handle == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: handle, name y email son obligatorios", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if !validRango(in.Rango) {
		return nil, fmt.Errorf("%w: rango desconocido %q", domain.ErrInvalidInput, in.Rango)
	}
	u, err := uc.repo.CreateUser(ctx, token, &entity.User{
		Handle: in.Handle,
		Name:   in.Name,
		Email:  in.Email,
		Role:   in.Role,
		Rango:  in.Rango,
	}, in.Password)
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(u)
	return &out, nil
}

// Update aplica cambios parciales.
func (uc *UserUseCase) Update(ctx context.Context, token, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Role != nil && !entity.IsValidRole(*in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, *in.Role)
	}
	if in.Rango != nil && !validRango(*in.Rango) {
		return nil, fmt.Errorf("%w: rango desconocido %q", domain.ErrInvalidInput, *in.Rango)
	}
	if in.Password != nil && len(*in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	u, err := uc.repo.UpdateUser(ctx, token, id, repository.UserChanges{
		Handle:   in.Handle,
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Rango:    in.Rango,
	})
	if err != nil {
		return nil, err
	}
	out := ToUserResponse(u)
	return &out, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, token, id string) error {
	return uc.repo.DeleteUser(ctx, token, id)
}

// AdjustBalance suma o resta saldo y notifica al usuario afectado.
func (uc *UserUseCase) AdjustBalance(ctx context.Context, token, id string, in dto.BalanceRequest) (*dto.UserResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if in.Operation != entity.BalanceAdd && in.Operation != entity.BalanceSubtract {
		return nil, fmt.Errorf("%w: operación %q (use add o subtract)", domain.ErrInvalidInput, in.Operation)
	}
	u, err := uc.repo.AdjustBalance(ctx, token, id, in.Amount.Round(2), in.Operation)
	if err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.BalanceChanged(id)
	}
	out := ToUserResponse(u)
	return &out, nil
}

func validRango(r string) bool {
	switch r {
	case "", entity.RangoOro, entity.RangoPlata, entity.RangoBronce:
		return true
	}
	return false
}

func paginate[T any](list []T, page dto.PageRequest) []T {
	if page.Offset >= len(list) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(list) {
		end = len(list)
	}
	return list[page.Offset:end]
}
