package api

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hoang-11jjk/RealEstatePro/internal/api/handlers"
	"github.com/hoang-11jjk/RealEstatePro/internal/api/middleware"
	"github.com/hoang-11jjk/RealEstatePro/internal/config"
	"github.com/hoang-11jjk/RealEstatePro/internal/services"
	"github.com/hoang-11jjk/RealEstatePro/internal/storage"
	"github.com/hoang-11jjk/RealEstatePro/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, st store.Store) *gin.Engine {
	// Initialize services needed by API handlers HERE
	propertyService := services.NewPropertyService(st)

	var assetStorage storage.IAssetStorage
	var err error
	if cfg.UploadBackend == "s3" {
		assetStorage, err = storage.NewS3Storage(cfg)
	} else {
		assetStorage, err = storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
	}
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize asset storage for API: %v", err)
	}

	r := gin.Default()

	// Apply global middleware first (order matters)
	corsCfg := cors.DefaultConfig()
	if cfg.CorsAllowOrigins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(cfg.CorsAllowOrigins, ",")
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Owner-Email", "X-Owner-Name"}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	statsHandler := handlers.NewStatsHandler(propertyService)
	uploadHandler := handlers.NewUploadHandler(assetStorage)

	api := r.Group("/api")
	{
		api.GET("/properties", propertyHandler.List)
		api.GET("/properties/:id", propertyHandler.Get)
		api.POST("/properties", propertyHandler.Create)
		api.PATCH("/properties/:id", propertyHandler.Patch)
		api.PATCH("/properties/:id/moderation", propertyHandler.Moderate)
		api.DELETE("/properties/:id", propertyHandler.Delete)

		api.GET("/stats/by-location", statsHandler.ByLocation)
		api.POST("/upload", uploadHandler.Upload)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	// Locally stored assets are served straight from the upload directory.
	if cfg.UploadBackend == "local" {
		r.Static(cfg.UploadBaseURL, cfg.UploadDir)
	}

	return r
}
