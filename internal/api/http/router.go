package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/fuel-service/internal/api/http/handlers"
	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/domain"
	"github.com/spec-kit/fuel-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Employees      *handlers.EmployeesHandler
	Vehicles       *handlers.VehiclesHandler
	Stations       *handlers.StationsHandler
	Distributions  *handlers.DistributionsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", cfg.AuthMiddleware.Handle)
	admin := auth.RequireRole(domain.RoleAdmin)
	employee := auth.RequireRole(domain.RoleEmployee)
	authenticated := auth.RequireAuthenticated()

	api.Post("/admins/login", cfg.Auth.LoginAdmin)
	api.Post("/employees/login", cfg.Auth.LoginEmployee)
	api.Post("/fuel-stations/login", cfg.Auth.LoginFuelStation)
	api.Post("/vehicles/login", cfg.Auth.LoginVehicle)
	api.Post("/fuel-stations/register", cfg.Auth.RegisterFuelStation)
	api.Post("/vehicles/register", cfg.Auth.RegisterVehicle)

	api.Post("/admins/register", admin, cfg.Auth.RegisterAdmin)
	api.Post("/admins/quota/reset", admin, cfg.Admin.ResetQuotas)
	api.Post("/dmt", admin, cfg.Admin.UpsertDMTRecord)

	api.Post("/employees/register", auth.RequireRole(domain.RoleAdmin, domain.RoleFuelStation), cfg.Auth.RegisterEmployee)
	api.Post("/employees/scan-qr", employee, cfg.Employees.ScanQR)
	api.Put("/employees/:id/update-quota", employee, cfg.Employees.UpdateQuota)

	api.Get("/vehicles/:registrationNumber", authenticated, cfg.Vehicles.Get)
	api.Put("/vehicles/:registrationNumber", authenticated, cfg.Vehicles.Update)
	api.Get("/vehicles/:registrationNumber/qr", authenticated, cfg.Vehicles.QRCode)

	api.Get("/fuel-stations/all-with-status", admin, cfg.Stations.ListWithStatus)
	api.Put("/fuel-stations/:id/activate", admin, cfg.Stations.Activate)

	distributions := api.Group("/distributions", admin)
	distributions.Post("", cfg.Distributions.Create)
	distributions.Get("/all", cfg.Distributions.List)
	distributions.Get("/total-fuel-last-three-days", cfg.Distributions.TotalLastThreeDays)
	distributions.Get("/total-fuel-last-six-months", cfg.Distributions.TotalLastSixMonths)
	distributions.Get("/total-distributed-today", cfg.Distributions.TotalToday)
	distributions.Get("/most-distributed-fuel-type-today", cfg.Distributions.MostDistributedFuelTypeToday)
	distributions.Get("/distinct-fuel-stations-today", cfg.Distributions.DistinctStationsToday)

	api.Get("/me", authenticated, cfg.Auth.Me)
	api.Post("/auth/password/change", authenticated, cfg.Auth.ChangePassword)
}
