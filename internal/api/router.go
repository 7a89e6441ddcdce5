package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/christianotieno/product-catalog/internal/api/handler"
	"github.com/christianotieno/product-catalog/internal/api/middleware"
	"github.com/christianotieno/product-catalog/internal/core/ports"
	"github.com/christianotieno/product-catalog/internal/core/service"
	"github.com/christianotieno/product-catalog/internal/infrastructure/db/postgres"
	rediscache "github.com/christianotieno/product-catalog/internal/infrastructure/db/redis"
	"github.com/christianotieno/product-catalog/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case the category cache is disabled.
func NewRouter(db *sql.DB, rdb *redis.Client, codec *token.Codec, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	e.Use(middleware.Auth(codec, log))
	e.Use(middleware.Policy(middleware.DefaultRules))

	// --- Dependencies ---
	var cache ports.CategoryCache
	if rdb != nil {
		cache = rediscache.NewCategoryCache(rdb)
	}

	authService := service.NewAuthService(postgres.NewUserRepository(db), codec, log)
	productService := service.NewProductService(postgres.NewProductRepository(db), cache, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/users", authHandler.ListUsers)
	e.GET("/auth/users/:id", authHandler.GetUser)
	e.PUT("/auth/users/:id/role", authHandler.UpdateUserRole)
	e.DELETE("/auth/users/:id", authHandler.DeleteUser)

	// --- Product routes ---
	e.GET("/products", productHandler.List)
	e.POST("/products", productHandler.Create)
	e.GET("/products/all", productHandler.GetAll)
	e.GET("/products/search", productHandler.Search)
	e.GET("/products/categories", productHandler.Categories)
	e.GET("/products/category/:category", productHandler.ByCategory)
	e.GET("/products/low-stock", productHandler.LowStock)
	e.GET("/products/:id", productHandler.Get)
	e.PUT("/products/:id", productHandler.Update)
	e.DELETE("/products/:id", productHandler.Delete)
	e.PUT("/products/:id/stock", productHandler.AdjustStock)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
