package serverApp

import (
	"context"
	config "efood-checkout/configs"
	database "efood-checkout/internal/pkg/db"
	"efood-checkout/internal/pkg/efood"
	"efood-checkout/internal/pkg/middleware"
	"efood-checkout/internal/pkg/rabbitmq"
	"efood-checkout/internal/pkg/redis"
	s3aws "efood-checkout/internal/pkg/storage/s3"
	"efood-checkout/internal/repository"
	orderRepo "efood-checkout/internal/repository/order"
	sessionRepo "efood-checkout/internal/repository/session"
	"net/http"
	"time"

	catalogHandler "efood-checkout/internal/handler/catalog"
	checkoutHandler "efood-checkout/internal/handler/checkout"
	orderHandler "efood-checkout/internal/handler/order"
	sessionHandler "efood-checkout/internal/handler/session"
	catalogService "efood-checkout/internal/service/catalog"
	checkoutService "efood-checkout/internal/service/checkout"
	orderService "efood-checkout/internal/service/order"
	sessionService "efood-checkout/internal/service/session"

	"github.com/gin-gonic/gin"
)

// Dependencies are the connections shared by the API and the workers. DB,
// Rabbit, Publisher and S3 may be nil when the backing service is not
// configured.
type Dependencies struct {
	Env       *config.Config
	DB        *database.Database
	Redis     redis.IRedis
	Rabbit    *rabbitmq.ConnectionManager
	Publisher *rabbitmq.Publisher
	S3        s3aws.Is3
	Efood     efood.IClient
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, ctx context.Context, deps *Dependencies) {
	InitMiddleware(engine)

	engine.GET("/health", health(deps))

	e := engine.Group(BasePath())
	InitRoutes(e, ctx, deps)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine) {
	e.Use(middleware.CorsMiddleware())
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

func health(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := func(ok bool) gin.H {
			if ok {
				return gin.H{"status": "healthy"}
			}
			return gin.H{"status": "unhealthy"}
		}

		redisOK := deps.Redis != nil && deps.Redis.Ping(ctx) == nil
		databaseOK := deps.DB != nil && !deps.DB.IsCloseConnection()
		rabbitOK := deps.Rabbit != nil && !deps.Rabbit.IsClosed()

		// redis holds every session, the other services only back history
		code := http.StatusOK
		if !redisOK {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status": code,
			"service": gin.H{
				"redis":    status(redisOK),
				"database": status(databaseOK),
				"rabbitmq": status(rabbitOK),
			},
		})
	}
}

func newRepository(deps *Dependencies) repository.IRepository {
	rp := repository.IRepository{
		Session: sessionRepo.NewRepo(deps.Redis, deps.Env.SessionTTL, deps.Env.SessionLockTTL),
	}
	if deps.DB != nil {
		rp.Order = orderRepo.NewRepo(deps.DB)
	}
	return rp
}

func InitRoutes(e *gin.RouterGroup, ctx context.Context, deps *Dependencies) {
	// setup repo
	rp := newRepository(deps)

	// === Session ===
	SessionService := sessionService.NewService(rp)
	SessionHandler := sessionHandler.NewHandler(ctx, SessionService)
	SessionHandler.NewRoutes(e)

	// === Catalog ===
	CatalogService := catalogService.NewService(deps.Efood, deps.Redis, deps.Env.CatalogCacheTTL)
	CatalogHandler := catalogHandler.NewHandler(ctx, CatalogService)
	CatalogHandler.NewRoutes(e)

	// === Cart and checkout ===
	var publisher checkoutService.EventPublisher
	if deps.Publisher != nil {
		publisher = deps.Publisher
	}
	CheckoutService := checkoutService.NewService(rp, CatalogService, deps.Efood, publisher, deps.Env.SessionLockTTL, deps.Env.CatalogTimeout)
	CheckoutHandler := checkoutHandler.NewHandler(ctx, CheckoutService)
	CheckoutHandler.NewRoutes(e)

	// === Order history ===
	if rp.Order != nil {
		OrderService := orderService.NewService(rp, deps.S3)
		OrderHandler := orderHandler.NewHandler(ctx, deps.Rabbit, OrderService)
		OrderHandler.NewRoutes(e)
	}
}
