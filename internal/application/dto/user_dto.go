package dto

import "github.com/shopspring/decimal"

// LoginRequest credenciales del backend más el par apiKey/apiSecret del proveedor de pines.
// El par del proveedor es opcional: sin él solo se bloquean las compras.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	APIKey    string `json:"api_key"`
	APISecret string `json:"api_secret"`
}

// LoginResponse token de sesión del panel y perfil del usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario en el backend.
type CreateUserRequest struct {
	Handle   string `json:"handle" validate:"required,min=1,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin vendedor cliente master"`
	Rango    string `json:"rango" validate:"omitempty,oneof=oro plata bronce"`
}

// UpdateUserRequest cambios parciales de un usuario. El saldo no se cambia aquí.
type UpdateUserRequest struct {
	Handle   *string `json:"handle"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin vendedor cliente master"`
	Rango    *string `json:"rango" validate:"omitempty,oneof=oro plata bronce"`
}

// BalanceRequest ajuste de saldo: operation add|subtract.
type BalanceRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Operation string          `json:"operation" validate:"required,oneof=add subtract"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID     string          `json:"id"`
	Handle string          `json:"handle"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
	Saldo  decimal.Decimal `json:"saldo"`
	Rango  string          `json:"rango,omitempty"`
}

// UserListResponse lista de usuarios, filtrada por rol si se pidió.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// SessionResponse estado de la sesión actual (GET /api/auth/me).
type SessionResponse struct {
	User           UserResponse `json:"user"`
	HasCredentials bool         `json:"has_credentials"` // apiKey/apiSecret del proveedor cargados
}
