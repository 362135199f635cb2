package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/termpro2000/fdapp/internal/application/auth"
	"github.com/termpro2000/fdapp/internal/application/export"
	"github.com/termpro2000/fdapp/internal/application/shipping"
	"github.com/termpro2000/fdapp/internal/application/usecase"
	"github.com/termpro2000/fdapp/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ShippingUC *shipping.ShippingUseCase
	UserUC     *usecase.UserUseCase
	ActivityUC *usecase.ActivityUseCase
	ExportUC   *export.ExportUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authRequired := AuthMiddleware(deps.JWTSecret)
	managerOnly := RequireRole(entity.RoleManager)
	adminOnly := RequireRole()

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authRequired, authHandler.Me)
	authGroup.Get("/check-username/:username", authHandler.CheckUsername)

	// Shipping; the tracking lookup is deliberately public.
	shippingGroup := api.Group("/shipping")
	shippingHandler := NewShippingHandler(deps.ShippingUC)
	shippingGroup.Get("/tracking/:trackingNumber", shippingHandler.Track)
	orders := shippingGroup.Group("/orders", authRequired)
	orders.Post("/", shippingHandler.Create)
	orders.Get("/", shippingHandler.List)
	orders.Get("/:id", shippingHandler.Get)
	orders.Get("/:id/waybill", shippingHandler.Waybill)
	orders.Patch("/:id/status", managerOnly, shippingHandler.UpdateStatus)
	orders.Post("/:id/tracking", managerOnly, shippingHandler.AssignTracking)

	// User administration. Reads are open to managers, writes to admins only.
	users := api.Group("/users", authRequired)
	userHandler := NewUserHandler(deps.UserUC, deps.ActivityUC)
	users.Get("/activities/logs", managerOnly, userHandler.Activities)
	users.Get("/", managerOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", managerOnly, userHandler.Get)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)

	// Exports
	exports := api.Group("/exports", authRequired)
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/orders", exportHandler.Orders)
	exports.Get("/statistics", managerOnly, exportHandler.Statistics)
}
