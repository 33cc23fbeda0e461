package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/application/usecase"
	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
	"github.com/jhoicas/pines-admin-api/pkg/jwt"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra el backend y ciclo de vida de la sesión del panel.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions *session.Store
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, sessions *session.Store, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions, jwtCfg: jwtCfg}
}

// Login autentica en el backend, abre la sesión con las credenciales del proveedor y emite el JWT del panel.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	token, user, err := uc.users.Login(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user == nil || token == "" {
		return nil, domain.ErrUnauthorized
	}

	sess, err := uc.sessions.Create(token, *user, pinapi.Credentials{
		APIKey:    strings.TrimSpace(in.APIKey),
		APISecret: strings.TrimSpace(in.APISecret),
	})
	if err != nil {
		return nil, err
	}
	signed, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.sessions.Destroy(sess.ID)
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     signed,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      usecase.ToUserResponse(user),
	}, nil
}

// Logout cierra la sesión.
func (uc *AuthUseCase) Logout(sessionID string) {
	uc.sessions.Destroy(sessionID)
}

// Me refresca el perfil en el backend y lo guarda en la sesión.
// Un 401 del backend cierra la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, sess *session.Session) (*dto.SessionResponse, error) {
	user, err := uc.users.Profile(ctx, sess.BackendToken)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			uc.sessions.Destroy(sess.ID)
		}
		return nil, err
	}
	if user == nil {
		user = &sess.User
	} else {
		uc.sessions.UpdateUser(sess.ID, *user)
	}
	creds, err := uc.sessions.Credentials(sess)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{
		User:           usecase.ToUserResponse(user),
		HasCredentials: creds.Complete(),
	}, nil
}
