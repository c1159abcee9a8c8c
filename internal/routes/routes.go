package routes

import (
	"appointly/internal/handlers"
	"appointly/internal/logger"
	"appointly/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options - middleware, которые маршрутам нужны извне
type Options struct {
	Authenticator middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	EnableSwagger bool
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, opts Options) {
	ginRouter.GET("/health", appHandlers.HealthHandler.Health)

	// Категории живут в корне и скоупятся через ?userId
	appHandlers.CategoryHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api")

	public := api.Group("")
	if opts.RateLimiter != nil {
		public.Use(opts.RateLimiter.Middleware())
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Authenticator))

	appHandlers.AuthHandler.RegisterRoutes(public, protected)
	appHandlers.ProfileHandler.RegisterRoutes(protected)

	if opts.EnableSwagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger UI route /swagger registered")
	}
}
