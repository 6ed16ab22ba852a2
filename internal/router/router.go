// internal/router/router.go
package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autosalvage/storefront/internal/config"
	"github.com/autosalvage/storefront/internal/database"
	"github.com/autosalvage/storefront/internal/handlers"
	"github.com/autosalvage/storefront/internal/middleware"
	"github.com/autosalvage/storefront/internal/services"
	"github.com/autosalvage/storefront/internal/utils"
)

// Services are the dependencies the HTTP layer is built on.
type Services struct {
	Products handlers.ProductService
	UsedCars handlers.UsedCarService
	Auth     handlers.AuthService
	DB       handlers.Pinger
}

func Initialize(db *database.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	return New(cfg, Services{
		Products: services.NewProductService(db, storageService),
		UsedCars: services.NewUsedCarService(db, storageService),
		Auth:     services.NewAuthService(cfg.Admin),
		DB:       db,
	}), nil
}

func New(cfg *config.Config, svc Services) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Products)
	usedCarHandler := handlers.NewUsedCarHandler(svc.UsedCars)
	authHandler := handlers.NewAuthHandler(svc.Auth)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", handlers.Health(svc.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Storage.Driver == "local" {
		r.Static(cfg.Storage.UploadRoute, cfg.Storage.UploadDir)
	}

	adminOnly := middleware.AdminRequired(cfg.Admin.RequireToken)

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)
		api.GET("/currencies", handlers.GetCurrencies)

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", adminOnly, productHandler.CreateProduct)
			products.PUT("/:id", adminOnly, productHandler.UpdateProduct)
			products.DELETE("/:id", adminOnly, productHandler.DeleteProduct)
		}

		usedCars := api.Group("/used_cars")
		{
			usedCars.GET("", usedCarHandler.GetUsedCars)
			usedCars.GET("/:id", usedCarHandler.GetUsedCar)
			usedCars.POST("", adminOnly, usedCarHandler.CreateUsedCar)
			usedCars.PUT("/:id", adminOnly, usedCarHandler.UpdateUsedCar)
			usedCars.DELETE("/:id", adminOnly, usedCarHandler.DeleteUsedCar)
		}
	}

	if cfg.StaticDir != "" {
		r.NoRoute(spaFallback(cfg.StaticDir))
	}

	return r
}

// spaFallback serves the built storefront, answering unknown paths with
// index.html so client-side routes survive a reload.
func spaFallback(dir string) gin.HandlerFunc {
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "Not found", nil)
			return
		}

		name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+c.Request.URL.Path)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}
		c.File(index)
	}
}
