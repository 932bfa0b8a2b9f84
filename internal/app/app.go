package app

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/fuel-service/internal/api/http"
	"github.com/spec-kit/fuel-service/internal/api/http/handlers"
	"github.com/spec-kit/fuel-service/internal/auth"
	"github.com/spec-kit/fuel-service/internal/config"
	"github.com/spec-kit/fuel-service/internal/events"
	"github.com/spec-kit/fuel-service/internal/observability"
	"github.com/spec-kit/fuel-service/internal/persistence"
	"github.com/spec-kit/fuel-service/internal/repository"
	"github.com/spec-kit/fuel-service/internal/service"
)

// Stores groups the repositories backing the services.
type Stores struct {
	Admins        repository.AdminRepository
	Employees     repository.EmployeeRepository
	Stations      repository.FuelStationRepository
	Vehicles      repository.VehicleRepository
	DMT           repository.DMTRepository
	Distributions repository.DistributionRepository
}

// PostgresStores returns pgx-backed repositories.
func PostgresStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Admins:        repository.NewAdminRepository(pool),
		Employees:     repository.NewEmployeeRepository(pool),
		Stations:      repository.NewFuelStationRepository(pool),
		Vehicles:      repository.NewVehicleRepository(pool),
		DMT:           repository.NewDMTRepository(pool),
		Distributions: repository.NewDistributionRepository(pool),
	}
}

// MemoryStores returns repositories over one in-memory store.
func MemoryStores(m *repository.Memory) Stores {
	return Stores{
		Admins:        m.Admins(),
		Employees:     m.Employees(),
		Stations:      m.Stations(),
		Vehicles:      m.Vehicles(),
		DMT:           m.DMT(),
		Distributions: m.Distributions(),
	}
}

// Options carries infrastructure into New. Only Stores is required.
type Options struct {
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Stores   Stores
	Quotas   service.QuotaTable
	Cache    service.StatsCache
	Sink     service.EventSink
	Postgres *persistence.Postgres
	Redis    *persistence.Redis
}

// App is the assembled service.
type App struct {
	Fiber         *fiber.App
	Dispatcher    events.Dispatcher
	Auth          *service.AuthService
	Quota         *service.QuotaService
	Vehicles      *service.VehicleService
	Stations      *service.StationService
	Distributions *service.DistributionService
	DMT           *service.DMTService
	Notifications *service.NotificationService
}

// New wires services, handlers and routes. Event handlers are registered
// by the notification worker.
func New(cfg config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Quotas.ByType == nil {
		opts.Quotas = service.QuotaTable{ByType: map[string]int{}, Default: cfg.Quota.DefaultWeeklyQuota}
	}

	dispatcher := events.NewInMemoryDispatcher()
	notifications := service.NewNotificationService(dispatcher, logger, opts.Sink)

	stores := opts.Stores
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AdminRepo:    stores.Admins,
		EmployeeRepo: stores.Employees,
		StationRepo:  stores.Stations,
		VehicleRepo:  stores.Vehicles,
		DMTRepo:      stores.DMT,
		Quotas:       opts.Quotas,
	})
	quotaService := service.NewQuotaService(service.QuotaDependencies{
		VehicleRepo:   stores.Vehicles,
		Dispatcher:    dispatcher,
		Metrics:       opts.Metrics,
		Logger:        logger,
		AllowNegative: cfg.Quota.AllowNegative,
	})
	vehicleService := service.NewVehicleService(stores.Vehicles,
		auth.NewQRSigner(cfg.Auth.QRSigningSecret), auth.NewHasher(cfg.Auth.BcryptCost))
	stationService := service.NewStationService(stores.Stations, dispatcher, logger)
	distributionService := service.NewDistributionService(service.DistributionDependencies{
		DistributionRepo: stores.Distributions,
		StationRepo:      stores.Stations,
		Cache:            opts.Cache,
		CacheTTL:         cfg.Stats.CacheTTL(),
		Dispatcher:       dispatcher,
		Logger:           logger,
	})
	dmtService := service.NewDMTService(stores.DMT)

	resolver := auth.NewIdentityResolver(authService.TokenManager(), auth.CredentialStores{
		Admins:    stores.Admins,
		Employees: stores.Employees,
		Stations:  stores.Stations,
		Vehicles:  stores.Vehicles,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	httptransport.RegisterMiddlewares(app, logger, opts.Metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, opts.Postgres, opts.Redis),
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(quotaService, vehicleService),
		Vehicles:       handlers.NewVehiclesHandler(vehicleService),
		Stations:       handlers.NewStationsHandler(stationService),
		Distributions:  handlers.NewDistributionsHandler(distributionService),
		Admin:          handlers.NewAdminHandler(dmtService, quotaService),
		AuthMiddleware: auth.NewAuthMiddleware(resolver, logger, opts.Metrics),
		Metrics:        opts.Metrics,
	})

	return &App{
		Fiber:         app,
		Dispatcher:    dispatcher,
		Auth:          authService,
		Quota:         quotaService,
		Vehicles:      vehicleService,
		Stations:      stationService,
		Distributions: distributionService,
		DMT:           dmtService,
		Notifications: notifications,
	}
}
