package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/application/session"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/pines-admin-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pines-admin-api/pkg/jwt"
	"github.com/jhoicas/pines-admin-api/pkg/pinapi"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "pines-admin-test"
	testExpMin    = 60
)

func newSessions() *session.Store {
	return session.NewStore(testJWTSecret, time.Hour)
}

// buildTestApp aplicación mínima con AuthMiddleware + RequireRole y un handler dummy.
func buildTestApp(store *session.Store, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, store),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole crea una sesión en store y firma un JWT que apunta a ella.
func tokenForRole(t *testing.T, store *session.Store, role string) string {
	t.Helper()
	sess, err := store.Create("backend-token", entity.User{ID: testUserID, Role: role}, pinapi.Credentials{APIKey: "k", APISecret: "s"})
	require.NoError(t, err)
	tok, err := pkgjwt.Generate(testJWTSecret, sess.ID, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaStaff(t *testing.T) {
	store := newSessions()
	app := buildTestApp(store, entity.RoleAdmin, entity.RoleMaster)
	resp := doRequest(t, app, "/protected", tokenForRole(t, store, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
}

func TestRequireRole_MasterAccedeRutaStaff(t *testing.T) {
	store := newSessions()
	app := buildTestApp(store, entity.RoleAdmin, entity.RoleMaster)
	resp := doRequest(t, app, "/protected", tokenForRole(t, store, entity.RoleMaster))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_VendedorBloqueadoEnRutaStaff(t *testing.T) {
	store := newSessions()
	app := buildTestApp(store, entity.RoleAdmin, entity.RoleMaster)
	resp := doRequest(t, app, "/protected", tokenForRole(t, store, entity.RoleVendedor))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	store := newSessions()
	app := buildTestApp(store, entity.RoleAdmin)

	resp := doRequest(t, app, "/protected", tokenForRole(t, store, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(newSessions(), entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(newSessions(), entity.RoleAdmin)
	resp := doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_SesionCerrada_Retorna401(t *testing.T) {
	store := newSessions()
	app := buildTestApp(store, entity.RoleAdmin)

	sess, err := store.Create("backend-token", entity.User{ID: testUserID, Role: entity.RoleAdmin}, pinapi.Credentials{})
	require.NoError(t, err)
	tok, err := pkgjwt.Generate(testJWTSecret, sess.ID, testUserID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)
	store.Destroy(sess.ID)

	resp := doRequest(t, app, "/protected", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "SESSION_EXPIRED")
}

func TestAuthMiddleware_CargaSesion(t *testing.T) {
	store := newSessions()
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, store), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
			"token":   apphttp.GetSession(c).BackendToken,
		})
	})

	resp := doRequest(t, app, "/me", tokenForRole(t, store, entity.RoleVendedor))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "vendedor", body["role"])
	assert.Equal(t, "backend-token", body["token"])
}

func TestAuthMiddleware_AccessTokenSoloEnEvents(t *testing.T) {
	store := newSessions()
	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/api/events", apphttp.AuthMiddleware(testJWTSecret, store), ok)
	app.Get("/api/pins", apphttp.AuthMiddleware(testJWTSecret, store), ok)

	tok := tokenForRole(t, store, entity.RoleCliente)[len("Bearer "):]

	resp := doRequest(t, app, "/api/events?access_token="+tok, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, "/api/pins?access_token="+tok, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
