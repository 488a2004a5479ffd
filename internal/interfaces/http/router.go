// Package http wires the gin engine: middleware stack and route table.
package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"loreforge/internal/infrastructure/config"
	"loreforge/internal/interfaces/http/handlers"
	"loreforge/internal/interfaces/http/middleware"
	"loreforge/internal/shared/logger"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Generation *handlers.GenerationHandler
	Content    *handlers.ContentHandler
	Catalog    *handlers.CatalogHandler
	Setting    *handlers.SettingHandler
}

type Router struct {
	engine   *gin.Engine
	cfg      *config.Config
	db       *gorm.DB
	handlers Handlers
	logger   logger.Interface
}

func NewRouter(cfg *config.Config, db *gorm.DB, h Handlers, log logger.Interface) *Router {
	return &Router{
		engine:   gin.New(),
		cfg:      cfg,
		db:       db,
		handlers: h,
		logger:   log,
	}
}

// SetupRoutes installs the middleware stack and the route table.
func (r *Router) SetupRoutes() {
	r.engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(r.logger),
		middleware.CORS(r.cfg.Server.AllowedOrigins),
		middleware.SecurityHeaders(),
	)

	health := handlers.NewHealthHandler(r.db)
	r.engine.GET("/health", health.Health)

	api := r.engine.Group("/api")
	{
		api.POST("/generate", r.handlers.Generation.Generate)
		api.GET("/catalog", r.handlers.Catalog.GetCatalog)

		content := api.Group("/content")
		{
			content.GET("", r.handlers.Content.List)
			content.GET("/:id", r.handlers.Content.Get)
			content.GET("/:id/html", r.handlers.Content.GetHTML)
			content.GET("/:id/image", r.handlers.Content.GetImage)
			content.GET("/:id/thumbnail", r.handlers.Content.GetThumbnail)
		}

		admin := api.Group("/admin")
		{
			categories := admin.Group("/categories")
			{
				categories.GET("", r.handlers.Catalog.ListCategories)
				categories.POST("", r.handlers.Catalog.CreateCategory)
				categories.GET("/:id", r.handlers.Catalog.GetCategory)
				categories.PUT("/:id", r.handlers.Catalog.UpdateCategory)
				categories.DELETE("/:id", r.handlers.Catalog.DeleteCategory)
				categories.GET("/:id/parameters", r.handlers.Catalog.ListParameters)
			}

			parameters := admin.Group("/parameters")
			{
				parameters.POST("", r.handlers.Catalog.CreateParameter)
				parameters.GET("/:id", r.handlers.Catalog.GetParameter)
				parameters.PUT("/:id", r.handlers.Catalog.UpdateParameter)
				parameters.DELETE("/:id", r.handlers.Catalog.DeleteParameter)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("", r.handlers.Setting.List)
				settings.GET("/:key", r.handlers.Setting.Get)
				settings.PUT("", r.handlers.Setting.Update)
			}
		}
	}
}

// Engine returns the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
