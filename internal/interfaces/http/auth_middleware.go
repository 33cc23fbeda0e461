package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/dto"
	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	"github.com/jhoicas/pines-admin-api/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID         = "user_id"
	LocalRole           = "role"
	LocalSession        = "session"
	localSessionExpired = "session_expired"
)

// AuthMiddleware valida el Bearer Token JWT, carga la sesión del servidor y deja UserID, Role y Session en c.Locals.
// Si algún handler detecta que el backend venció la sesión, la cierra al terminar.
func AuthMiddleware(jwtSecret string, sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// EventSource no envía headers: se acepta ?access_token= solo para el stream.
			authHeader = tokenFromQuery(c)
		}
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		sess, err := sessions.Get(claims.SessionID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "la sesión terminó, inicie sesión de nuevo"})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalSession, sess)

		err = c.Next()
		if expired, _ := c.Locals(localSessionExpired).(bool); expired {
			sessions.Destroy(sess.ID)
		}
		return err
	}
}

func tokenFromQuery(c *fiber.Ctx) string {
	if !strings.HasSuffix(c.Path(), "/events") {
		return ""
	}
	if tok := c.Query("access_token"); tok != "" {
		return "Bearer " + tok
	}
	return ""
}

// RequireRole permite el paso solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no trae rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// staffRoles administran usuarios, productos y cupos.
var staffRoles = []string{entity.RoleAdmin, entity.RoleMaster}

func isStaffRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleMaster
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetSession devuelve la sesión cargada por AuthMiddleware.
func GetSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(LocalSession).(*session.Session)
	return s
}
