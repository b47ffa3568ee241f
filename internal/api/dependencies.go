package api

import (
	"github.com/redis/go-redis/v9"
	gormlib "gorm.io/gorm"

	"skylane/concourse/internal/common"
	"skylane/concourse/internal/config"
	"skylane/concourse/internal/db/repositories"
	"skylane/concourse/internal/metrics"
	"skylane/concourse/internal/services"
	"skylane/concourse/internal/store"
)

// Repositories groups the gorm-backed catalog data access.
type Repositories struct {
	Airports  *repositories.AirportRepository
	Airlines  *repositories.AirlineRepository
	Aircraft  *repositories.AircraftRepository
	Flights   *repositories.FlightRepository
	Users     *repositories.UserRepository
}

// Services groups the business layer.
type Services struct {
	Catalog   *services.CatalogService
	Search    *services.SearchService
	Bookings  *services.BookingService
	Receipts  *services.ReceiptService
	Feed      *services.FeedService
	FlightOps *services.FlightOpsService
	Users     *services.UserService
}

// Dependencies is the DI container handed to handlers, routes, and
// worker startup.
type Dependencies struct {
	Cfg     *config.Config
	Store   store.Store
	Metrics *metrics.MetricsRegistry
	Cache   common.CacheInterface
	Queue   *common.RedisQueueService
	Repo    Repositories
	Svc     Services
}

// InitDependencies wires the object graph once at startup. The seed for
// the simulated payment gateway is fixed so local demos reproduce.
func InitDependencies(
	cfg *config.Config,
	st store.Store,
	gormDB *gormlib.DB,
	redisClient *redis.Client,
	metricsReg *metrics.MetricsRegistry,
) *Dependencies {
	repos := Repositories{
		Airports: repositories.NewAirportRepository(gormDB),
		Airlines: repositories.NewAirlineRepository(gormDB),
		Aircraft: repositories.NewAircraftRepository(gormDB),
		Flights:  repositories.NewFlightRepository(gormDB),
		Users:    repositories.NewUserRepository(gormDB),
	}

	cache := common.NewCacheService(300, 600)

	var queue *common.RedisQueueService
	if redisClient != nil {
		queue = common.NewRedisQueueService(redisClient)
	}

	catalog := services.NewCatalogService(repos.Airports, repos.Airlines, cache)
	gateway := services.NewSimulatedGateway(cfg.PaymentSuccessProb, 1)

	bookings := services.NewBookingService(st, catalog, gateway, queue, metricsReg, services.BookingConfig{
		HoldTTL:             cfg.HoldTTL,
		PriceDriftTolerance: cfg.PriceDriftTolerance,
	})

	svcs := Services{
		Catalog:   catalog,
		Search:    services.NewSearchService(repos.Flights, catalog, metricsReg),
		Bookings:  bookings,
		Receipts:  services.NewReceiptService(st, common.NewHTMLReceiptRenderer()),
		Feed:      services.NewFeedService(repos.Flights, repos.Airlines, cache),
		FlightOps: services.NewFlightOpsService(repos.Flights),
		Users:     services.NewUserService(repos.Users, cfg.JWTSecret),
	}

	return &Dependencies{
		Cfg:     cfg,
		Store:   st,
		Metrics: metricsReg,
		Cache:   cache,
		Queue:   queue,
		Repo:    repos,
		Svc:     svcs,
	}
}
