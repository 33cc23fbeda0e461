package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pines-admin-api/internal/application/session"
)

// RouterDeps handlers ya construidos más lo que necesita el middleware de auth.
type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Products  *ProductHandler
	Limits    *LimitHandler
	Pins      *PinHandler
	Ledger    *LedgerHandler
	Reports   *ReportHandler
	Events    *EventsHandler
	Sessions  *session.Store
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	api.Post("/auth/login", deps.Auth.Login)

	// Rutas protegidas (requieren Bearer Token y sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))
	staff := RequireRole(staffRoles...)

	protected.Post("/auth/logout", deps.Auth.Logout)
	protected.Get("/auth/me", deps.Auth.Me)
	protected.Get("/events", deps.Events.Stream)

	// Usuarios y saldos (admin/master)
	users := protected.Group("/users", staff)
	users.Get("/", deps.Users.List)
	users.Post("/", deps.Users.Create)
	users.Get("/:id", deps.Users.GetByID)
	users.Put("/:id", deps.Users.Update)
	users.Delete("/:id", deps.Users.Delete)
	users.Post("/:id/balance", deps.Users.AdjustBalance)

	// Productos: lectura para todos, escritura staff
	protected.Get("/products", deps.Products.List)
	protected.Post("/products", staff, deps.Products.Create)
	protected.Put("/products/:code", staff, deps.Products.Update)
	protected.Delete("/products/:code", staff, deps.Products.Delete)

	// Cupos
	protected.Get("/limits/:sellerId", deps.Limits.Get)
	protected.Put("/limits/:sellerId", staff, deps.Limits.Update)
	protected.Post("/limits/:sellerId/restore", staff, deps.Limits.Restore)

	// Pines
	protected.Get("/catalog", deps.Pins.Catalog)
	protected.Get("/players/:id/validate", deps.Pins.ValidatePlayer)
	protected.Post("/pins/purchase", deps.Pins.Purchase)
	protected.Get("/pins", deps.Pins.List)
	protected.Patch("/pins/:id/used", deps.Pins.MarkUsed)

	// Libro y reportes
	protected.Get("/sales", deps.Ledger.Sales)
	protected.Get("/transactions", deps.Ledger.Transactions)
	protected.Get("/reports/sales", deps.Reports.Sales)
	protected.Get("/reports/sales/:format", deps.Reports.Export)
}
